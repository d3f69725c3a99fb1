package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"portfolio.dev/internal/store"
)

var errNoContactLog = errors.New("CONTACT_DB_PATH is not set")

var (
	submissionsDB    string
	submissionsLimit int
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Print recent contact submissions from the submission log",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := submissionsDB
		if path == "" {
			path = os.Getenv("CONTACT_DB_PATH")
		}
		if path == "" {
			return errNoContactLog
		}
		contactLog, err := store.Open(cmd.Context(), path, os.Getenv("HASH_SALT"))
		if err != nil {
			return err
		}
		defer func() { _ = contactLog.Close() }()

		recent, err := contactLog.Recent(cmd.Context(), submissionsLimit)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(recent)
	},
}

func init() {
	submissionsCmd.Flags().StringVar(&submissionsDB, "db", "", "SQLite path (defaults to CONTACT_DB_PATH)")
	submissionsCmd.Flags().IntVar(&submissionsLimit, "limit", 20, "number of submissions to show")
	rootCmd.AddCommand(submissionsCmd)
}
