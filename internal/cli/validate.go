package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var order string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate an order file (nothing is saved)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(cmd, workspace, nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			orderPath, err := resolveOrderPath(ws, order)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateOrder(ws.Orders, ws.PricingOptions()...)
			o, err := uc.Execute(cmd.Context(), orderPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK (total %s)\n", o.TotalCost().Label())
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&order, "order", "o", "", "Order name or path (required)")

	_ = c.MarkFlagRequired("order")
	return c
}
