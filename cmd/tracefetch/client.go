package main

import (
	"log/slog"

	"github.com/m-mizutani/tracefetch"
	"github.com/urfave/cli/v3"
)

func clientFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Sources: cli.EnvVars("LANGSMITH_API_KEY"),
			Usage:   "API key for the tracing service",
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Sources: cli.EnvVars("LANGSMITH_ENDPOINT"),
			Usage:   "Service endpoint (defaults to the hosted service)",
		},
	}
}

func newClient(cmd *cli.Command) (*tracefetch.Client, error) {
	opts := []tracefetch.Option{
		tracefetch.WithLogger(slog.Default()),
	}
	if endpoint := cmd.String("endpoint"); endpoint != "" {
		opts = append(opts, tracefetch.WithBaseURL(endpoint))
	}
	return tracefetch.New(cmd.String("api-key"), opts...)
}
