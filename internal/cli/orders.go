package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/infra/httpclient"
	"github.com/aalvaropc/shipquote/internal/usecase"
	"github.com/aalvaropc/shipquote/internal/usecase/query"
)

func ordersCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "orders",
		Short: "Inspect the order store",
	}

	c.AddCommand(ordersListCmd(), ordersQueryCmd(), ordersFilesCmd())
	return c
}

func ordersListCmd() *cobra.Command {
	var workspace string
	var format string
	var remote string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			if remote != "" {
				client, err := httpclient.New(remote)
				if err != nil {
					return err
				}
				records, err := client.ListOrders(cmd.Context())
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), records, format)
			}

			ws, err := loadWorkspace(cmd, workspace, nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			records, err := usecase.NewListOrders(ws.Store).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records, format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	cmd.Flags().StringVar(&remote, "remote", "", "List orders from a running shipquote server instead")
	return cmd
}

func ordersQueryCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "query <jsonpath>",
		Short: "Evaluate a JSONPath expression over saved orders",
		Example: `  shipquote orders query '$[*].total_cost'
  shipquote orders query '$[?(@.distance_km > 10)].shipping_method'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cmd, workspace, nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			records, err := usecase.NewListOrders(ws.Store).Execute(cmd.Context())
			if err != nil {
				return err
			}

			v, err := query.Eval(records, args[0])
			if err != nil {
				return err
			}
			out, err := query.Format(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func ordersFilesCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List order files in the workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(cmd, workspace, nil)
			if err != nil {
				return err
			}
			defer ws.Close()

			refs, err := ws.Orders.ListOrders(ws.Root)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(w, "(no order files found)")
				return nil
			}

			fmt.Fprintf(w, "Workspace: %s\n\n", ws.Root)
			for _, r := range refs {
				rel := relPath(ws.Root, r.Path)
				fmt.Fprintf(w, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func printRecords(w io.Writer, records []domain.OrderRecord, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "(no saved orders)")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "SAVED", "PRODUCTS", "KM", "SHIPPING", "TOTAL")
	for i, r := range records {
		saved := "-"
		if !r.SavedAt.IsZero() {
			saved = r.SavedAt.Format("2006-01-02 15:04")
		}
		t.Row(
			fmt.Sprint(i+1),
			saved,
			fmt.Sprint(len(r.Products)),
			fmt.Sprintf("%g", r.DistanceKM),
			r.ShippingCost.Label(),
			r.TotalCost.Label(),
		)
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "%d order(s)\n", len(records))
	return nil
}
