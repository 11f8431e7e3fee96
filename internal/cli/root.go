package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/config"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/odoo"
	"github.com/aiqso/odoo-bridge/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "odooctl",
	Short: "Operational tooling for the Odoo bridge",
	Long: `odooctl groups the operational tasks around the Odoo ERP integration:
health checks, product catalog seeding, CSV lead imports, enrichment sync
from the permits database, portal invitations and Stripe provider setup.

Connection settings come from the environment (or a .env file) and can be
overridden per invocation with the --odoo-* flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		return logger.Setup(logger.Config{
			Level:  level,
			Format: "console",
			Output: "stderr",
		})
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("odoo-url", "", "Odoo base URL (overrides ODOO_URL)")
	rootCmd.PersistentFlags().String("odoo-db", "", "Odoo database name (overrides ODOO_DB)")
	rootCmd.PersistentFlags().String("odoo-username", "", "Odoo login (overrides ODOO_USERNAME)")
	rootCmd.PersistentFlags().String("odoo-api-key", "", "Odoo API key (overrides ODOO_API_KEY)")

	cobra.EnableCommandSorting = false
}

// loadConfig reads the environment configuration and applies any --odoo-*
// flag overrides.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("odoo-url"); v != "" {
		cfg.Odoo.URL = strings.TrimRight(v, "/")
	}
	if v, _ := cmd.Flags().GetString("odoo-db"); v != "" {
		cfg.Odoo.Database = v
	}
	if v, _ := cmd.Flags().GetString("odoo-username"); v != "" {
		cfg.Odoo.Username = v
	}
	if v, _ := cmd.Flags().GetString("odoo-api-key"); v != "" {
		cfg.Odoo.APIKey = v
	}
	return cfg
}

// connect validates the Odoo settings and authenticates before any command
// touches the ERP, so credential problems fail fast with a clear message.
func connect(ctx context.Context, cfg *config.Config) (*odoo.Client, error) {
	if err := cfg.Odoo.Validate(); err != nil {
		return nil, err
	}
	client, err := odoo.NewClient(cfg.Odoo)
	if err != nil {
		return nil, err
	}
	uid, err := client.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication with %s failed: %w", cfg.Odoo.URL, err)
	}
	fmt.Printf("Connected to %s as uid %d\n", cfg.Odoo.URL, uid)
	return client, nil
}
