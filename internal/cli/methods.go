package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/usecase"
)

func methodsCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "methods",
		Short: "List shipping methods with their rates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []usecase.Option
			if ws, err := loadWorkspace(cmd, workspace, nil); err == nil {
				defer ws.Close()
				opts = ws.PricingOptions()
			}

			methods, err := usecase.NewListShippingMethods(opts...).Execute()
			if err != nil {
				return err
			}

			for _, m := range methods {
				fmt.Fprintf(cmd.OutOrStdout(), "- %-9s %s (%s)\n", m.Kind, m.Method, m.DeliveryTime)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; default rates are used without one)")
	return c
}
