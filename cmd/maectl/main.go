package main

import (
	"log/slog"
	"os"

	"github.com/maeartistry/cmd/maectl/commands"
	"github.com/maeartistry/internal/logging"
)

func main() {
	logging.Init(os.Getenv("LOG_LEVEL"))
	if err := commands.NewRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
