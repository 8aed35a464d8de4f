package main

import (
	"log"

	"github.com/futig/career-agent/internal/builder"
)

func main() {
	app, err := builder.BuildTelegramBot()
	if err != nil {
		log.Fatal("Failed to build telegram bot:", err)
	}
	defer func() { _ = app.Logger().Sync() }()

	if err := app.Run(); err != nil {
		log.Fatal("Telegram bot error:", err)
	}
}
