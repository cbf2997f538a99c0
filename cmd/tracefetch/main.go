package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// A local .env is optional; flags and real environment variables win.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app := &cli.Command{
		Name:  "tracefetch",
		Usage: "Fetch traces and conversation threads from a LangSmith-compatible tracing service",
		Commands: []*cli.Command{
			traceCommand(),
			threadCommand(),
			tracesCommand(),
			threadsCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
