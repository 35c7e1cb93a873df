package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/ecopuntos/ecoroster/internal/config"
	"github.com/ecopuntos/ecoroster/internal/db"
	"github.com/ecopuntos/ecoroster/internal/repository"
	"github.com/ecopuntos/ecoroster/internal/roster"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds the dependencies shared by CLI actions.
type Runner struct {
	logger *log.Logger
}

// Template writes the roster template workbook to the output path.
func (r *Runner) Template(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("output")

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := roster.WriteTemplate(f); err != nil {
		return err
	}
	r.logger.Info("template written", "path", output)
	return nil
}

// Import runs the importer against the file given as the first argument and
// prints the outcome as JSON.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("missing roster file argument")
	}

	conn, cfg, err := r.connect(ctx, cmd.String("config"))
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.DB, cfg.MigrationsPath); err != nil {
		return err
	}

	importer := roster.NewService(
		repository.NewUserRepository(conn.Pool),
		repository.NewStudentRepository(conn.Pool),
		repository.NewSectionRepository(conn.Pool),
		repository.NewImportHistoryRepository(conn.Pool),
		r.logger,
	)

	outcome := importer.ImportFile(ctx, path)
	return printJSON(outcome)
}

// History lists recent import runs.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	conn, _, err := r.connect(ctx, cmd.String("config"))
	if err != nil {
		return err
	}
	defer conn.Close()

	historyRepo := repository.NewImportHistoryRepository(conn.Pool)
	entries, err := historyRepo.List(ctx, int(cmd.Int("limit")), int(cmd.Int("offset")))
	if err != nil {
		return err
	}
	return printJSON(entries)
}

func (r *Runner) connect(ctx context.Context, configPath string) (*db.Connection, config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	conn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		return nil, config.Config{}, err
	}
	return conn, cfg, nil
}

func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
