package main

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	infraRepo "github.com/BruksfildServices01/escala-voluntarios/internal/infra/repository"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
	ucVolunteer "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/volunteer"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and normalize legacy shift labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			app.logger.Info("migration complete")
			return nil
		},
	}
}

func inactiveCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "inactive",
		Short: "List volunteers without a booking in the last N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB()
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if days <= 0 {
				days = app.cfg.InactiveDays
			}

			uc := ucVolunteer.NewInactive(
				infraRepo.NewVolunteerGormRepository(db, app.logger),
				timezone.SystemClock(timezone.Location(app.cfg.Timezone)),
				days,
			)
			report, err := uc.Execute(app.ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sem escala desde %s (%d dias)\n\n", report.Cutoff, report.Days)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NOME\tTELEFONE\tRESPONSÁVEL\tÚLTIMA ESCALA")
			for _, v := range report.Volunteers {
				last := "nunca"
				if v.LastBooking != nil {
					last = *v.LastBooking
				}
				resp := ""
				if v.IsResponsible {
					resp = "sim"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Name, v.Phone, resp, last)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "window in days (default INACTIVE_DAYS)")
	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("empty password")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}
