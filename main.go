package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pollscope/pollscope/internal/inspect"
	"github.com/pollscope/pollscope/internal/report"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "poll.yaml",
			Usage:   "dataset config file describing the four export tables",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "output format: text, json or yaml",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "only log errors",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "pollscope",
		Usage: "analyze poll panel exports: labels, per-voter answers, frequency tables",
		Commands: []*cli.Command{
			{
				Name:   "describe",
				Usage:  "print the question codes and labels and each question's answer codes",
				Flags:  commonFlags(),
				Action: inspect.DescribeAction,
			},
			{
				Name:  "voter",
				Usage: "print one voter's answers across all questions",
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "index",
						Usage: "zero-based voter position in load order",
					},
					&cli.IntFlag{
						Name:  "id",
						Usage: "explicit voter id (takes precedence over --index)",
					},
				),
				Action: inspect.VoterAction,
			},
			{
				Name:  "freq",
				Usage: "answer-frequency table of a single-answer question",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "question",
						Aliases:  []string{"q"},
						Usage:    "question code to aggregate",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "restrict voters with code=value, e.g. col_10=1",
					},
					&cli.StringFlag{
						Name:  "by",
						Usage: "split the table by this demographic question code",
					},
					&cli.BoolFlag{
						Name:  "split",
						Usage: "split by the config's demographic_code",
					},
				),
				Action: report.FreqAction,
			},
			{
				Name:  "opentext",
				Usage: "summarize free-text answers of the open questions",
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "top",
						Value: 10,
						Usage: "number of keywords to report per question",
					},
				),
				Action: report.OpenTextAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
