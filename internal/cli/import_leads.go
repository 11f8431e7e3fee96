package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
)

var importLeadsCmd = &cobra.Command{
	Use:   "import-leads <csv-file>",
	Short: "Import a lead list CSV into the CRM",
	Long: `Imports a scraped lead list CSV into Odoo: companies and contacts as
partners under a per-list umbrella company, tagged with the list
categories, plus one CRM lead per row. Rows without a usable contact
name are skipped.`,
	Example: `  odooctl import-leads dfw_roofing.csv
  odooctl import-leads dfw_roofing.csv --list-name "DFW Roofing Q3" --industry Roofing`,
	Args: cobra.ExactArgs(1),
	RunE: runImportLeads,
}

func init() {
	rootCmd.AddCommand(importLeadsCmd)

	importLeadsCmd.Flags().String("list-name", "", "Name for the lead list (default: derived from the file name)")
	importLeadsCmd.Flags().String("industry", "Construction", "Industry category to tag imported records with")
}

func runImportLeads(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig(cmd)

	path := args[0]
	listName, _ := cmd.Flags().GetString("list-name")
	industry, _ := cmd.Flags().GetString("industry")
	if listName == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		listName = strings.ReplaceAll(base, "_", " ")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer file.Close()

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	importer := service.NewLeadImportService(
		repository.NewPartnerRepository(client),
		repository.NewCategoryRepository(client),
		repository.NewLeadRepository(client),
	)

	fmt.Printf("Importing %q as list %q (industry %s)\n", path, listName, industry)
	stats, err := importer.Import(ctx, file, listName, industry)
	if err != nil {
		return err
	}

	fmt.Printf("\nImport complete:\n")
	fmt.Printf("  Companies: %d\n", stats.CompaniesSeen)
	fmt.Printf("  Contacts:  %d\n", stats.ContactsSeen)
	fmt.Printf("  Leads:     %d\n", stats.LeadsCreated)
	fmt.Printf("  Skipped:   %d\n", stats.Skipped)
	return nil
}
