package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
)

var seedProductsCmd = &cobra.Command{
	Use:   "seed-products",
	Short: "Create the service product catalog in Odoo",
	Long: `Creates the standard service products (lead packages, consulting,
audits and support plans) as product templates. Products that already
exist, matched by internal reference, are left untouched, so the command
is safe to run repeatedly.`,
	RunE: runSeedProducts,
}

func init() {
	rootCmd.AddCommand(seedProductsCmd)
}

func runSeedProducts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig(cmd)

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	catalog := service.NewCatalogService(repository.NewProductRepository(client))

	result, err := catalog.Seed(ctx)
	if err != nil {
		return err
	}
	for _, code := range result.Created {
		fmt.Printf("Created %s\n", code)
	}
	for _, code := range result.Skipped {
		fmt.Printf("Exists  %s\n", code)
	}
	fmt.Printf("\n%d created, %d already present\n\n", len(result.Created), len(result.Skipped))

	products, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Current catalog:")
	for _, p := range products {
		fmt.Printf("  %-14s %-40s $%.2f\n", p.DefaultCode, p.Name, p.ListPrice)
	}
	return nil
}
