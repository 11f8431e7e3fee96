package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/database"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
)

var syncLeadsCmd = &cobra.Command{
	Use:   "sync-leads",
	Short: "Sync enriched permit leads from PostgreSQL into the CRM",
	Long: `Reads enriched commercial permit leads from the scraper's PostgreSQL
database and applies the contact details to matching CRM leads. Leads
are matched by the permit number in their title. With --create-new,
unmatched permits that carry an email address become new CRM leads.`,
	Example: `  odooctl sync-leads --dry-run
  odooctl sync-leads --city Dallas --min-score 70
  odooctl sync-leads --create-new`,
	RunE: runSyncLeads,
}

func init() {
	rootCmd.AddCommand(syncLeadsCmd)

	syncLeadsCmd.Flags().String("city", "", "Only sync permits for this city")
	syncLeadsCmd.Flags().Int("min-score", service.DefaultMinScore, "Minimum lead score to sync")
	syncLeadsCmd.Flags().Bool("dry-run", false, "Log planned changes without writing")
	syncLeadsCmd.Flags().Bool("create-new", false, "Create CRM leads for unmatched permits with an email")

	syncLeadsCmd.Flags().String("pg-host", "", "Permits database host (overrides POSTGRES_HOST)")
	syncLeadsCmd.Flags().String("pg-port", "", "Permits database port (overrides POSTGRES_PORT)")
	syncLeadsCmd.Flags().String("pg-db", "", "Permits database name (overrides POSTGRES_DB)")
	syncLeadsCmd.Flags().String("pg-user", "", "Permits database user (overrides POSTGRES_USER)")
	syncLeadsCmd.Flags().String("pg-password", "", "Permits database password (overrides POSTGRES_PASSWORD)")
}

func runSyncLeads(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig(cmd)

	if v, _ := cmd.Flags().GetString("pg-host"); v != "" {
		cfg.Postgres.Host = v
	}
	if v, _ := cmd.Flags().GetString("pg-port"); v != "" {
		cfg.Postgres.Port = v
	}
	if v, _ := cmd.Flags().GetString("pg-db"); v != "" {
		cfg.Postgres.Name = v
	}
	if v, _ := cmd.Flags().GetString("pg-user"); v != "" {
		cfg.Postgres.User = v
	}
	if v, _ := cmd.Flags().GetString("pg-password"); v != "" {
		cfg.Postgres.Password = v
	}

	city, _ := cmd.Flags().GetString("city")
	minScore, _ := cmd.Flags().GetInt("min-score")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	createNew, _ := cmd.Flags().GetBool("create-new")

	db, err := database.NewPostgresDB(&cfg.Postgres)
	if err != nil {
		return fmt.Errorf("permits database connection failed: %w", err)
	}

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	sync := service.NewLeadSyncService(
		repository.NewPermitRepository(db),
		repository.NewLeadRepository(client),
		repository.NewPartnerRepository(client),
	)

	if dryRun {
		fmt.Println("Dry run: no changes will be written")
	}
	stats, err := sync.Sync(ctx, service.SyncOptions{
		City:      city,
		MinScore:  minScore,
		DryRun:    dryRun,
		CreateNew: createNew,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nSync complete:\n")
	fmt.Printf("  Updated:          %d\n", stats.Updated)
	fmt.Printf("  Created:          %d\n", stats.Created)
	fmt.Printf("  Not found:        %d\n", stats.NotFound)
	fmt.Printf("  Skipped:          %d\n", stats.Skipped)
	fmt.Printf("  Contacts updated: %d\n", stats.ContactsUpdated)
	return nil
}
