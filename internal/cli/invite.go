package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiqso/odoo-bridge/internal/application/service"
	"github.com/aiqso/odoo-bridge/internal/infrastructure/repository"
)

var inviteCmd = &cobra.Command{
	Use:   "invite <email> <name> [company]",
	Short: "Send a customer portal invitation",
	Long: `Finds the partner by email, creating one if needed, and sends the Odoo
portal invitation so the customer can sign in and see their invoices.`,
	Example: `  odooctl invite jane@example.com "Jane Smith"
  odooctl invite jane@example.com "Jane Smith" "Smith Roofing LLC"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runInvite,
}

func init() {
	rootCmd.AddCommand(inviteCmd)
}

func runInvite(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig(cmd)

	email, name := args[0], args[1]
	company := ""
	if len(args) == 3 {
		company = args[2]
	}

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	portal := service.NewPortalService(
		repository.NewPartnerRepository(client),
		repository.NewPortalRepository(client),
	)

	result, err := portal.Invite(ctx, email, name, company)
	if err != nil {
		return err
	}
	if result.Created {
		fmt.Printf("Created partner %d for %s\n", result.PartnerID, email)
	} else {
		fmt.Printf("Found existing partner %d for %s\n", result.PartnerID, email)
	}
	fmt.Printf("Portal invitation sent to %s\n", email)
	return nil
}
