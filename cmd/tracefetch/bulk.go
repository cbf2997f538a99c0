package main

import (
	"context"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tracefetch"
	"github.com/urfave/cli/v3"
)

func bulkFlags() []cli.Flag {
	return append(clientFlags(),
		&cli.StringFlag{
			Name:    "project",
			Sources: cli.EnvVars("LANGSMITH_PROJECT"),
			Usage:   "Restrict the search to one project",
		},
		&cli.IntFlag{
			Name:  "limit",
			Value: 10,
			Usage: "Maximum number of records to fetch",
		},
		&cli.IntFlag{
			Name:  "last",
			Usage: "Only records started within the last N minutes",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "Only records started after this RFC3339 timestamp",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Maximum number of fetches in flight",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print records as a JSON array",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Directory to write one JSON file per record into",
		},
	)
}

func parseSince(cmd *cli.Command) (time.Time, error) {
	s := cmd.String("since")
	if s == "" {
		return time.Time{}, nil
	}
	since, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid --since timestamp", goerr.Value("since", s))
	}
	return since, nil
}

// progressFor reports fetch progress on stderr. JSON mode stays silent so
// pipelines only see the records.
func progressFor(cmd *cli.Command) tracefetch.ProgressFunc {
	if cmd.Bool("json") {
		return nil
	}
	return newProgressLine(os.Stderr)
}

func tracesCommand() *cli.Command {
	return &cli.Command{
		Name:  "traces",
		Usage: "Search for recent traces and fetch them in bulk",
		Flags: append(bulkFlags(),
			&cli.BoolFlag{
				Name:  "metadata",
				Usage: "Include normalized run metadata",
			},
			&cli.BoolFlag{
				Name:  "feedback",
				Usage: "Include feedback attached to each run",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			since, err := parseSince(cmd)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			traces, err := client.FetchTraces(ctx, tracefetch.TraceQueryOptions{
				Project:         cmd.String("project"),
				Limit:           int(cmd.Int("limit")),
				LastMinutes:     int(cmd.Int("last")),
				Since:           since,
				IncludeMetadata: cmd.Bool("metadata"),
				IncludeFeedback: cmd.Bool("feedback"),
				MaxConcurrent:   int(cmd.Int("concurrency")),
				Progress:        progressFor(cmd),
			})
			if err != nil {
				return err
			}

			if dir := cmd.String("output"); dir != "" {
				for _, trace := range traces {
					if err := writeRecord(dir, trace.ID, trace); err != nil {
						return err
					}
				}
				return nil
			}
			if cmd.Bool("json") {
				return printJSON(os.Stdout, traces)
			}
			for _, trace := range traces {
				if err := renderTrace(os.Stdout, trace); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func threadsCommand() *cli.Command {
	return &cli.Command{
		Name:  "threads",
		Usage: "Search for recently active threads and fetch them in bulk",
		Flags: bulkFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			since, err := parseSince(cmd)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			threads, err := client.FetchThreads(ctx, tracefetch.ThreadQueryOptions{
				Project:       cmd.String("project"),
				Limit:         int(cmd.Int("limit")),
				LastMinutes:   int(cmd.Int("last")),
				Since:         since,
				MaxConcurrent: int(cmd.Int("concurrency")),
				Progress:      progressFor(cmd),
			})
			if err != nil {
				return err
			}

			if dir := cmd.String("output"); dir != "" {
				for _, thread := range threads {
					if err := writeRecord(dir, thread.ID, thread); err != nil {
						return err
					}
				}
				return nil
			}
			if cmd.Bool("json") {
				return printJSON(os.Stdout, threads)
			}
			for _, thread := range threads {
				if err := renderThread(os.Stdout, thread); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
