// Package cli implements catalogctl, the administration command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"catalog_backend/internal/app/di"
	productentity "catalog_backend/internal/feature/products/domain/entity"
	userusecase "catalog_backend/internal/feature/users/usecase"
	"catalog_backend/internal/platform/config"
	"catalog_backend/internal/platform/db"
	"catalog_backend/internal/platform/logger"
)

// app is the wired application a command operates on.
type app struct {
	cfg *config.Config
	db  *gorm.DB
	c   *di.Container
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// openApp loads the configuration and connects to the database. Redis is never
// used here: commands read and write the database directly.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log)

	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, db: gdb, c: di.NewContainer(gdb, nil, di.Options{})}, nil
}

// withApp runs fn with an opened app and closes it afterwards.
func withApp(fn func(ctx context.Context, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd.Context(), a, args)
	}
}

// NewRootCmd builds the catalogctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Administer the catalog API database",
		SilenceUsage: true,
	}
	root.AddCommand(
		newInstallCmd(),
		newMigrateCmd(),
		newReportCmd(),
		newPurgeTokensCmd(),
		newTokenCmd(),
	)
	return root
}

func newInstallCmd() *cobra.Command {
	var in userusecase.CreateUserInput
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Create the tables and the first admin user",
	}
	cmd.Flags().StringVar(&in.Name, "name", "Admin", "admin display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	cmd.RunE = withApp(func(ctx context.Context, a *app, _ []string) error {
		if err := db.Migrate(a.db); err != nil {
			return err
		}
		u, created, err := a.c.Users.Bootstrap(ctx, in)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Admin user %d created (%s)\n", u.ID, u.Email)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "User %d already exists (%s), nothing to do\n", u.ID, u.Email)
		}
		return nil
	})
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tables",
	}
	cmd.RunE = withApp(func(ctx context.Context, a *app, _ []string) error {
		if err := db.Migrate(a.db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	})
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print out-of-stock and in-stock products",
	}
	cmd.RunE = withApp(func(ctx context.Context, a *app, _ []string) error {
		r, err := a.c.Products.Report(ctx)
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), "Out of stock", r.OutOfStock)
		renderProducts(cmd.OutOrStdout(), "In stock", r.InStock)
		return nil
	})
	return cmd
}

func renderProducts(w io.Writer, title string, products []productentity.Product) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Price", "Stock"})
	for _, p := range products {
		t.AppendRow(table.Row{p.ID, p.Name, p.Price(), p.Stock})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(products)})
	t.Render()
}

func newPurgeTokensCmd() *cobra.Command {
	var retention time.Duration
	cmd := &cobra.Command{
		Use:   "purge-tokens",
		Short: "Delete tokens expired for longer than the retention",
	}
	cmd.Flags().DurationVar(&retention, "retention", -1, "retention of expired tokens (default TOKEN_RETENTION)")

	cmd.RunE = withApp(func(ctx context.Context, a *app, _ []string) error {
		if retention < 0 {
			retention = a.cfg.TokenRetention
		}
		n, err := a.c.Tokens.PurgeExpired(ctx, retention)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d expired tokens deleted\n", n)
		return nil
	})
	return cmd
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <key-or-id>",
		Short: "Show the owner and state of a token",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withApp(func(ctx context.Context, a *app, args []string) error {
		tok, err := a.c.Tokens.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		state := "active"
		if a.c.Tokens.IsExpired(tok) {
			state = "expired"
		}
		owner := fmt.Sprintf("%d (deleted)", tok.UserID)
		if u, err := a.c.Tokens.OwnerOf(ctx, tok); err == nil {
			owner = fmt.Sprintf("%d %s <%s>", u.ID, u.Name, u.Email)
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendRows([]table.Row{
			{"ID", tok.ID},
			{"User", owner},
			{"Created", tok.CreatedAt.UTC().Format(time.RFC3339)},
			{"Expires", tok.ExpiresAt.UTC().Format(time.RFC3339)},
			{"State", state},
		})
		t.Render()
		return nil
	})
	return cmd
}
