package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/domain/entity"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
)

var setupStripeCmd = &cobra.Command{
	Use:   "setup-stripe",
	Short: "Configure and enable the Stripe payment provider",
	Long: `Writes the Stripe API keys into the payment provider record and enables
it. The keys are read from the STRIPE_SECRET_KEY and
STRIPE_PUBLISHABLE_KEY environment variables. Requires the
payment_stripe module to be installed in Odoo.`,
	RunE: runSetupStripe,
}

func init() {
	rootCmd.AddCommand(setupStripeCmd)
}

func runSetupStripe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig(cmd)

	secretKey := os.Getenv("STRIPE_SECRET_KEY")
	publishableKey := os.Getenv("STRIPE_PUBLISHABLE_KEY")

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	providers := service.NewProviderService(repository.NewSystemRepository(client))

	provider, err := providers.SetupStripe(ctx, secretKey, publishableKey)
	if err != nil {
		return err
	}
	if provider.State == entity.ProviderEnabled {
		fmt.Printf("Stripe provider %q (id %d) is enabled\n", provider.Name, provider.ID)
	} else {
		fmt.Printf("Stripe provider %q (id %d) is in state %s\n", provider.Name, provider.ID, provider.State)
	}
	return nil
}
