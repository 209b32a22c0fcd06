package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/api"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/domain"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "bugtracker",
	Short:        "Bug tracking service",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApplication(ctx, true)
		if err != nil {
			return err
		}

		e := api.NewRouter(api.Deps{
			Directory: a.directory,
			Tracker:   a.tracker,
			Auth:      service.NewAuthService(a.directory, a.cfg.JWTSecret, a.cfg.TokenTTL),
			Inbox:     a.inbox,
			JWTSecret: a.cfg.JWTSecret,
			Logger:    a.log,
			Health:    a.health,
		})

		errCh := make(chan error, 1)
		go func() {
			a.log.Info().Str("addr", a.cfg.HTTPAddr).Str("env", a.cfg.Env).Msg("http server listening")
			if err := e.Start(a.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case <-ctx.Done():
		case err := <-errCh:
			if err != nil {
				a.Close(context.Background())
				return fmt.Errorf("http server: %w", err)
			}
		}

		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			a.log.Error().Err(err).Msg("http shutdown")
		}
		a.Close(shutdownCtx)
		return nil
	},
}

// accounts command
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Inspect accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts in insertion order",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		a, err := newApplication(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		var accounts []domain.Account
		if role != "" {
			r := domain.Role(role)
			if !r.Valid() {
				return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
			}
			accounts, err = a.directory.ListByRole(cmd.Context(), r)
		} else {
			// Local access to the store is administrator access.
			var operator *domain.Account
			operator, err = a.directory.Get(cmd.Context(), domain.BootstrapUsername)
			if err == nil {
				accounts, err = a.directory.List(cmd.Context(), operator)
			}
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tROLE\tCREATED")
		for _, acc := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", acc.Username, acc.Role, acc.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

// bugs command
var bugsCmd = &cobra.Command{
	Use:   "bugs",
	Short: "Inspect bug records",
}

var bugsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bugs by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		reporter, _ := cmd.Flags().GetString("reporter")
		developer, _ := cmd.Flags().GetString("developer")

		a, err := newApplication(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())

		var bugs []domain.BugRecord
		switch {
		case reporter != "":
			bugs, err = a.tracker.ListForReporter(cmd.Context(), reporter)
		case developer != "":
			bugs, err = a.tracker.ListForDeveloper(cmd.Context(), developer)
		default:
			bugs, err = a.tracker.ListAll(cmd.Context())
		}
		if err != nil {
			return err
		}

		if len(bugs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No bugs found.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSEVERITY\tSTATUS\tPROJECT\tASSIGNEE\tREPORTER\tCREATED")
		for _, b := range bugs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Title, b.Priority, b.Severity, b.Status, b.Project,
				b.AssignedDeveloper, b.ReportedBy, b.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

func init() {
	accountsListCmd.Flags().String("role", "", "only list accounts with this role")
	bugsListCmd.Flags().String("reporter", "", "only list bugs reported by this user")
	bugsListCmd.Flags().String("developer", "", "only list bugs assigned to this developer")
	bugsListCmd.MarkFlagsMutuallyExclusive("reporter", "developer")

	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)

	rootCmd.AddCommand(bugsCmd)
	bugsCmd.AddCommand(bugsListCmd)
}
