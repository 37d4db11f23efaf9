package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/usecase"
)

func compareCmd() *cobra.Command {
	var workspace string
	var order string
	var distance float64
	var format string

	c := &cobra.Command{
		Use:   "compare",
		Short: "Compare every shipping method for an order's products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(cmd, workspace, nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			orderPath, err := resolveOrderPath(ws, order)
			if err != nil {
				return err
			}

			var d *float64
			if cmd.Flags().Changed("distance") {
				d = &distance
			}

			uc := usecase.NewCompareShipping(ws.Orders, ws.PricingOptions()...)
			spec, quotes, err := uc.ExecuteFile(cmd.Context(), orderPath, d)
			if err != nil {
				return err
			}

			return printComparison(cmd.OutOrStdout(), spec.Name, spec.DistanceKM, quotes, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&order, "order", "o", "", "Order name or path (required)")
	c.Flags().Float64VarP(&distance, "distance", "d", 0, "Distance in km (overrides the order file)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = c.MarkFlagRequired("order")
	return c
}

func printComparison(w io.Writer, name string, distanceKM float64, quotes []usecase.ShippingQuote, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"name":        name,
			"distance_km": distanceKM,
			"quotes":      quotes,
		})
	}

	fmt.Fprintf(w, "Order: %s (%g km)\n", name, distanceKM)
	if len(quotes) > 0 {
		fmt.Fprintf(w, "Products cost: %s\n", quotes[0].ProductsCost.Label())
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("METHOD", "SHIPPING", "TOTAL", "DELIVERY")
	for _, q := range quotes {
		t.Row(q.Kind, q.ShippingCost.Label(), q.TotalCost.Label(), q.DeliveryTime)
	}
	fmt.Fprintln(w, t.String())
	return nil
}
