// Package keyboard builds the bot's inline keyboards.
package keyboard

import (
	"fmt"

	"github.com/futig/career-agent/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// AnalysisKeyboard follows a profile analysis.
func (b *Builder) AnalysisKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺 Build my roadmap", EncodeCallback(ActionMenu, MenuRoadmap)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionMenu, MenuRestart)),
		),
	)
}

// RoadmapKeyboard has two buttons per milestone, labelled by its "phase.milestone"
// number, followed by the download formats.
func (b *Builder) RoadmapKeyboard(roadmap entity.RoadmapResult) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	for p, phase := range roadmap.Phases {
		for m := range phase.Milestones {
			pos := EncodePosition(p, m)
			label := fmt.Sprintf("%d.%d", p+1, m+1)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📚 "+label+" resources", EncodeCallback(ActionResources, pos)),
				tgbotapi.NewInlineKeyboardButtonData("💬 "+label+" I'm stuck", EncodeCallback(ActionStuck, pos)),
			))
		}
	}

	rows = append(rows, b.downloadRow(), tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", EncodeCallback(ActionMenu, MenuRestart)),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (b *Builder) ChatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Back to roadmap", EncodeCallback(ActionMenu, MenuEndChat)),
		),
	)
}

func (b *Builder) downloadRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📥 MD", EncodeCallback(ActionDownload, string(entity.FormatMarkdown))),
		tgbotapi.NewInlineKeyboardButtonData("📥 PDF", EncodeCallback(ActionDownload, string(entity.FormatPDF))),
		tgbotapi.NewInlineKeyboardButtonData("📥 DOCX", EncodeCallback(ActionDownload, string(entity.FormatDOCX))),
	)
}
