package cli

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/infra/httpapi"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

func serveCmd() *cobra.Command {
	var workspace string
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve quotes and the order store over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(cmd, workspace, os.Stderr)
			if err != nil {
				return err
			}
			defer ws.Close()

			if addr == "" {
				addr = ws.Config.Server.Addr
			}

			opts := ws.PricingOptions()
			h := httpapi.NewHandler(
				usecase.NewPlaceOrder(ws.Orders, ws.Store, opts...),
				usecase.NewCompareShipping(ws.Orders, opts...),
				usecase.NewListOrders(ws.Store),
				usecase.NewListShippingMethods(opts...),
				ws.Log,
			)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return httpapi.Serve(ctx, ln, httpapi.NewRouter(h), ws.Log)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr from shipquote.yaml)")
	return c
}
