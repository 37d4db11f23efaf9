package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shipquote/internal/app"
	"github.com/aalvaropc/shipquote/internal/infra/logger"
	"github.com/aalvaropc/shipquote/internal/infra/workspacefinder"
)

// workspaceCtx is an opened workspace plus the logger bound to it.
type workspaceCtx struct {
	*app.Workspace

	closeLog func() error
}

func (ws *workspaceCtx) Close() {
	_ = ws.Workspace.Close()
	if ws.closeLog != nil {
		_ = ws.closeLog()
	}
}

// loadWorkspace resolves the root, starts file logging under it and opens
// the configured store. console, when set, mirrors log records (serve).
func loadWorkspace(cmd *cobra.Command, workspaceFlag string, console io.Writer) (*workspaceCtx, error) {
	return openWorkspace(cmd, workspaceFlag, console, app.Open)
}

// loadWorkspaceConfig is loadWorkspace without the store, for commands that
// only read order files (remote pricing).
func loadWorkspaceConfig(cmd *cobra.Command, workspaceFlag string) (*workspaceCtx, error) {
	return openWorkspace(cmd, workspaceFlag, nil, app.Load)
}

func openWorkspace(
	cmd *cobra.Command,
	workspaceFlag string,
	console io.Writer,
	open func(string, *slog.Logger) (*app.Workspace, error),
) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	closeLog, _ := logger.Setup(logger.Config{Root: root, Debug: debug, Console: console})

	ws, err := open(root, logger.L())
	if err != nil {
		if closeLog != nil {
			_ = closeLog()
		}
		return nil, err
	}

	return &workspaceCtx{Workspace: ws, closeLog: closeLog}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `shipquote init`): %w", wd, err)
	}
	return root, nil
}

// resolveOrderPath accepts a path, a file name under the orders dir, a bare
// file stem, or the order's name field.
func resolveOrderPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("order is required (use --order or -o)")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.Root, p)
		}
		return filepath.Clean(p), nil
	}

	ordersDir := ws.Config.OrdersDir
	if !filepath.IsAbs(ordersDir) {
		ordersDir = filepath.Join(ws.Root, ordersDir)
	}

	if hasYAMLExt(in) {
		p := filepath.Join(ordersDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(ordersDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	refs, err := ws.Orders.ListOrders(ws.Root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("order %q not found in %q", in, ordersDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return rel
}
