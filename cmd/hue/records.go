package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hueareyou/internal/config"
	"hueareyou/internal/models"
	"hueareyou/internal/results"
	"hueareyou/internal/session"
	"hueareyou/internal/tui"
)

var recordsFlags struct {
	from     int
	to       int
	name     string
	password string
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Log in as an admin and print saved records",
	RunE:  runRecords,
}

func init() {
	f := recordsCmd.Flags()
	f.IntVar(&recordsFlags.from, "from", 0, "First record position (0-based)")
	f.IntVar(&recordsFlags.to, "to", 9, "Last record position, inclusive")
	f.StringVar(&recordsFlags.name, "name", os.Getenv("HUE_NAME"), "Account name (default HUE_NAME)")
	f.StringVar(&recordsFlags.password, "password", "", "Account password (default HUE_PASSWORD)")
}

func runRecords(cmd *cobra.Command, _ []string) error {
	rng, err := models.NewRecordRange(recordsFlags.from, recordsFlags.to)
	if err != nil {
		return fmt.Errorf("--from and --to: %w", err)
	}

	password := recordsFlags.password
	if password == "" {
		password = os.Getenv("HUE_PASSWORD")
	}

	cfg := config.LoadClient()
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sess := session.NewManager(c, logger)
	s, err := sess.Login(ctx, recordsFlags.name, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !s.IsAdmin() {
		return errors.New("records are only available to admin accounts")
	}

	records, err := c.FetchRecords(ctx, s, rng)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No records in range.")
		return nil
	}
	for i, rec := range records {
		fmt.Fprintf(out, "#%d %s\n", rng.Begin+i, rec.Name)
		fmt.Fprint(out, tui.RenderSummary(results.FromMap(rec.Choice)))
		fmt.Fprintln(out)
	}
	return nil
}
