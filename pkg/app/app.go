// Package app wires configuration, scanner, worker pool and HTTP server
// into a runnable process.
package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/config"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/sandbox"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/scanner"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/server"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/workerpool"
)

// App represents the main application
type App struct {
	config         *config.Config
	log            hclog.Logger
	scanner        *scanner.Scanner
	pool           *workerpool.Pool
	audit          *sandbox.AuditLogger
	handler        http.Handler
	server         *server.Server
	tokenGenerated bool
	out            io.Writer
}

// Run serves requests until ctx is done
func (a *App) Run(ctx context.Context) error {
	ln, err := a.server.Listen()
	if err != nil {
		return err
	}

	a.log.Info("vscode-icons server extension loaded",
		"root", a.scanner.Root(),
		"addr", ln.Addr().String(),
		"workers", a.pool.Size(),
		"audit", a.config.AuditLogPath != "",
	)
	a.printBanner(ln.Addr())

	return a.server.Serve(ctx, ln)
}

// Close releases the worker pool and audit log
func (a *App) Close() error {
	a.pool.Close()
	return a.audit.Close()
}

// Handler returns the routed HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// Token returns the token clients must present
func (a *App) Token() string {
	return a.config.Token
}

// ExecutablesURL returns the endpoint URL for addr, with the token attached
// when it was generated at startup.
func (a *App) ExecutablesURL(addr net.Addr) string {
	u := url.URL{
		Scheme: "http",
		Host:   addr.String(),
		Path:   a.config.BaseURL + config.ExecutablesRoute,
	}
	if a.tokenGenerated {
		u.RawQuery = url.Values{"token": {a.config.Token}}.Encode()
	}
	return u.String()
}

// printBanner prints the access URL
func (a *App) printBanner(addr net.Addr) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	bold.Fprintf(a.out, "Serving executables below %s\n", a.scanner.Root())
	fmt.Fprint(a.out, "    ")
	green.Fprintln(a.out, a.ExecutablesURL(addr))
	if !a.tokenGenerated {
		fmt.Fprintln(a.out, "    (authenticate with the configured token)")
	}
}
