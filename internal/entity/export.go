package entity

type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// ExportRoadmapRequest carries a roadmap the caller already holds.
type ExportRoadmapRequest struct {
	Title   string        `json:"title,omitempty"`
	Format  ExportFormat  `json:"format"`
	Roadmap RoadmapResult `json:"roadmap"`
}
