package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/config"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/sandbox"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/scanner"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/server"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/workerpool"
)

// Bootstrap initializes and returns a configured App
func Bootstrap(cfg *config.Config, logger hclog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	// Resolve root directory to absolute path
	absRoot, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve root directory: %w", err)
	}
	cfg.RootDir = absRoot

	// Verify root directory exists
	if _, err := os.Stat(cfg.RootDir); err != nil {
		return nil, fmt.Errorf("root directory does not exist: %w", err)
	}

	cfg.BaseURL = config.NormalizeBaseURL(cfg.BaseURL)

	tokenGenerated := false
	if cfg.Token == "" {
		cfg.Token = uuid.NewString()
		tokenGenerated = true
	}

	s, err := scanner.New(cfg.RootDir, logger.Named("scanner"))
	if err != nil {
		return nil, err
	}

	pool, err := workerpool.New(cfg.Workers, logger.Named("pool"))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	var audit *sandbox.AuditLogger
	if cfg.AuditLogPath != "" {
		audit, err = sandbox.NewAuditLogger(cfg.AuditLogPath)
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	serverLog := logger.Named("server")
	handler := server.NewRouter(server.Routes{
		BaseURL:     cfg.BaseURL,
		Executables: server.NewExecutablesHandler(s, pool, audit, serverLog),
		Health:      server.HealthHandler(pool),
		Auth:        server.TokenAuth(cfg.Token, serverLog),
	})

	return &App{
		config:         cfg,
		log:            logger,
		scanner:        s,
		pool:           pool,
		audit:          audit,
		handler:        handler,
		server:         server.NewServer(cfg.ListenAddr, handler, cfg.ReadHeaderTimeout, cfg.ShutdownTimeout, serverLog),
		tokenGenerated: tokenGenerated,
		out:            os.Stderr,
	}, nil
}
