package formatter

import (
	"bytes"

	"github.com/futig/career-agent/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(title string, roadmap entity.RoadmapResult) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	heading := doc.AddParagraph()
	heading.SetStyle("Title")
	heading.AddRun().AddText(titleOrDefault(title))

	for _, phase := range roadmap.Phases {
		p := doc.AddParagraph()
		p.SetStyle("Heading1")
		p.AddRun().AddText(phase.Title)

		for _, m := range phase.Milestones {
			item := doc.AddParagraph()
			item.SetStyle("ListParagraph")
			item.AddRun().AddText("• " + m)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
