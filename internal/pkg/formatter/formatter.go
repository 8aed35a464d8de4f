// Package formatter renders a career roadmap as a downloadable document.
package formatter

import (
	"fmt"

	"github.com/futig/career-agent/internal/entity"
)

const DefaultTitle = "Career Roadmap"

type Formatter interface {
	Format(title string, roadmap entity.RoadmapResult) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidParameter, format)
	}
}

func titleOrDefault(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title
}
