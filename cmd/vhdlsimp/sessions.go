package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/termfx/vhdlcore/internal/store"
)

func newSessionsCmd() *cobra.Command {
	var dsn string
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List past vhdlsimp sessions from a store database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("sessions: --db is required")
			}
			db, err := store.Connect(dsn, false)
			if err != nil {
				return err
			}

			var sessions []store.Session
			q := db.Order("started_at desc")
			if limit > 0 {
				q = q.Limit(limit)
			}
			if err := q.Find(&sessions).Error; err != nil {
				return fmt.Errorf("sessions: query: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, s := range sessions {
				status := "running"
				if s.EndedAt != nil {
					status = "ended " + s.EndedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(out, "%s  started=%s  units=%d runs=%d errors=%d  %s\n",
					s.ID, s.StartedAt.Format("2006-01-02 15:04:05"), s.UnitsCount, s.RunsCount, s.ErrorTotal, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "db", "", "store.Connect-compatible DSN to query.")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to list (0 = unlimited).")
	return cmd
}
