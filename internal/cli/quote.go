package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/infra/httpclient"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

func quoteCmd() *cobra.Command {
	var workspace string
	var order string
	var shipping string
	var distance float64
	var noSave bool
	var format string
	var remote string

	c := &cobra.Command{
		Use:   "quote",
		Short: "Price an order file and append it to the order store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			var ws *workspaceCtx
			var err error
			if remote != "" {
				ws, err = loadWorkspaceConfig(cmd, workspace)
			} else {
				ws, err = loadWorkspace(cmd, workspace, nil)
			}
			if err != nil {
				return err
			}
			defer ws.Close()

			orderPath, err := resolveOrderPath(ws, order)
			if err != nil {
				return err
			}

			opts := usecase.PlaceOrderOptions{
				ShippingKind: shipping,
				DryRun:       noSave,
			}
			if cmd.Flags().Changed("distance") {
				opts.DistanceKM = &distance
			}

			var q usecase.Quote
			if remote != "" {
				q, err = remoteQuote(cmd.Context(), ws, remote, orderPath, opts)
			} else {
				uc := usecase.NewPlaceOrder(ws.Orders, ws.Store, ws.PricingOptions()...)
				q, err = uc.Execute(cmd.Context(), orderPath, opts)
			}
			if err != nil {
				return err
			}

			return printQuote(cmd.OutOrStdout(), q, format)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&order, "order", "o", "", "Order name or path (required)")
	c.Flags().StringVarP(&shipping, "shipping", "s", "", "Shipping method (overrides the order file)")
	c.Flags().Float64VarP(&distance, "distance", "d", 0, "Distance in km (overrides the order file)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not append the order to the store")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringVar(&remote, "remote", "", "Price on a running shipquote server (e.g. localhost:8080)")

	_ = c.MarkFlagRequired("order")
	return c
}

// remoteQuote reads the order file locally and prices it on the server.
func remoteQuote(ctx context.Context, ws *workspaceCtx, remote, orderPath string, opts usecase.PlaceOrderOptions) (usecase.Quote, error) {
	client, err := httpclient.New(remote, httpclient.WithLogger(ws.Log))
	if err != nil {
		return usecase.Quote{}, err
	}

	spec, err := ws.Orders.LoadOrder(orderPath)
	if err != nil {
		return usecase.Quote{}, err
	}
	if k := strings.TrimSpace(opts.ShippingKind); k != "" {
		spec.ShippingKind = k
	}
	if opts.DistanceKM != nil {
		spec.DistanceKM = *opts.DistanceKM
	}

	rec, err := client.PlaceOrder(ctx, spec, !opts.DryRun)
	if err != nil {
		return usecase.Quote{}, err
	}
	return usecase.Quote{Name: spec.Name, Record: rec, Saved: !opts.DryRun}, nil
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printQuote(w io.Writer, q usecase.Quote, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	case "pretty", "":
		printPrettyQuote(w, q)
		return nil
	default:
		return checkFormat(format)
	}
}

func printPrettyQuote(w io.Writer, q usecase.Quote) {
	if q.Name != "" {
		fmt.Fprintf(w, "Order:    %s\n", q.Name)
	}
	if q.Order != nil {
		fmt.Fprintln(w, q.Order.Describe())
	} else {
		r := q.Record
		fmt.Fprintf(w, "Shipping: %s\nTotal:    %s\n", r.ShippingMethod, r.TotalCost.Label())
	}

	if q.Saved {
		fmt.Fprintf(w, "Saved:    %s (%s)\n", q.Record.ID, q.Record.SavedAt.Format("2006-01-02 15:04:05Z"))
	} else {
		fmt.Fprintln(w, "Saved:    no")
	}
}
