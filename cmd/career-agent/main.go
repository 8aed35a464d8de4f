package main

import (
	"log"

	"github.com/futig/career-agent/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}
	defer func() { _ = app.Logger().Sync() }()

	if err := app.Run(); err != nil {
		log.Fatal("Application error:", err)
	}
}
