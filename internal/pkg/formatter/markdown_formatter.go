package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/career-agent/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(title string, roadmap entity.RoadmapResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", titleOrDefault(title))

	for _, phase := range roadmap.Phases {
		fmt.Fprintf(&buf, "\n## %s\n\n", phase.Title)
		for _, m := range phase.Milestones {
			fmt.Fprintf(&buf, "- [ ] %s\n", m)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
