package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the Odoo integration",
	Long: `Runs the full suite of integration checks: ERP reachability and
authentication, the portal module, the Stripe payment provider, the
automation platform and the product catalog. Exits non-zero when any
check fails.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig(cmd)

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	health := service.NewHealthService(
		client,
		repository.NewSystemRepository(client),
		repository.NewProductRepository(client),
		cfg.Automation.URL,
	)

	checks, healthy := health.CheckAll(ctx)
	fmt.Println()
	for _, check := range checks {
		fmt.Printf("%s %-20s %s\n", statusIcon(check.Status), check.Name, check.Detail)
	}
	fmt.Println()

	if !healthy {
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All checks passed")
	return nil
}

func statusIcon(status service.CheckStatus) string {
	switch status {
	case service.StatusOK:
		return "[ OK ]"
	case service.StatusWarn:
		return "[WARN]"
	default:
		return "[FAIL]"
	}
}
