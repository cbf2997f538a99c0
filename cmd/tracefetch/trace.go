package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tracefetch"
	"github.com/urfave/cli/v3"
)

func traceCommand() *cli.Command {
	return &cli.Command{
		Name:      "trace",
		Usage:     "Fetch one trace by run id",
		ArgsUsage: "<run-id>",
		Flags: append(clientFlags(),
			&cli.BoolFlag{
				Name:  "metadata",
				Usage: "Include normalized run metadata",
			},
			&cli.BoolFlag{
				Name:  "feedback",
				Usage: "Include feedback attached to the run",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the record as JSON",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Directory to write the record into instead of printing",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return goerr.New("run id is required")
			}
			if _, err := uuid.Parse(id); err != nil {
				return goerr.Wrap(err, "run id must be a UUID", goerr.Value("id", id))
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			trace, err := client.FetchTrace(ctx, id, tracefetch.TraceOptions{
				IncludeMetadata: cmd.Bool("metadata"),
				IncludeFeedback: cmd.Bool("feedback"),
			})
			if err != nil {
				return err
			}

			if dir := cmd.String("output"); dir != "" {
				return writeRecord(dir, trace.ID, trace)
			}
			if cmd.Bool("json") {
				return printJSON(os.Stdout, trace)
			}
			return renderTrace(os.Stdout, trace)
		},
	}
}

func threadCommand() *cli.Command {
	return &cli.Command{
		Name:      "thread",
		Usage:     "Fetch one conversation thread by thread id",
		ArgsUsage: "<thread-id>",
		Flags: append(clientFlags(),
			&cli.StringFlag{
				Name:    "project",
				Sources: cli.EnvVars("LANGSMITH_PROJECT"),
				Usage:   "Project the thread belongs to",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the record as JSON",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Directory to write the record into instead of printing",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return goerr.New("thread id is required")
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			projectID, err := client.ResolveProject(ctx, cmd.String("project"))
			if err != nil {
				return err
			}

			thread, err := client.FetchThread(ctx, id, projectID)
			if err != nil {
				return err
			}

			if dir := cmd.String("output"); dir != "" {
				return writeRecord(dir, thread.ID, thread)
			}
			if cmd.Bool("json") {
				return printJSON(os.Stdout, thread)
			}
			return renderThread(os.Stdout, thread)
		},
	}
}
