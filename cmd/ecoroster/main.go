// ecoroster is the operations CLI for the roster import service: it can
// generate the student template, import a roster file straight into the
// database, and inspect import history without going through the HTTP server.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	r := &Runner{logger: logger}

	cmd := &cli.Command{
		Name:  "ecoroster",
		Usage: "Student roster import tools",
		Commands: []*cli.Command{
			{
				Name:  "template",
				Usage: "Generate the roster import template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "Plantilla_Estudiantes.xlsx",
					},
				},
				Action: r.Template,
			},
			{
				Name:      "import",
				Usage:     "Import a roster xlsx file into the database",
				ArgsUsage: "<file.xlsx>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Directory containing config.yaml",
						Value:   ".",
					},
				},
				Action: r.Import,
			},
			{
				Name:  "history",
				Usage: "List past import runs, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Directory containing config.yaml",
						Value:   ".",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of entries to skip",
					},
				},
				Action: r.History,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal(err)
	}
}
