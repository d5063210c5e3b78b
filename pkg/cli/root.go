package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/config"
)

// Version is set at build time with -ldflags "-X .../pkg/cli.Version=..."
var Version = "dev"

var cfgFile string

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

var rootCmd = &cobra.Command{
	Use:   "vscode-icons-server",
	Short: "Executable file detection for file browser icons",
	Long: `vscode-icons-server reports which files in a directory are executable so
that a file browser can decorate them with distinct icons. Every lookup is
confined to the configured root directory.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// flagBindings maps command-line flags to their configuration keys
var flagBindings = map[string]string{
	"root":       "server.root",
	"addr":       "server.addr",
	"base-url":   "server.base_url",
	"token":      "server.token",
	"workers":    "scanner.workers",
	"audit-log":  "security.audit_log_path",
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"verbose":    "logging.verbose",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./"+config.ConfigFileName+".yaml or $HOME/"+config.ConfigFileName+".yaml)")

	// Server flags
	rootCmd.Flags().String("root", ".", "Root directory; lookups never leave it")
	rootCmd.Flags().String("addr", config.DefaultListenAddr, "Listen address")
	rootCmd.Flags().String("base-url", config.DefaultBaseURL, "URL prefix for all routes")
	rootCmd.Flags().String("token", "", "Authentication token (default: generated at startup)")

	// Scanner flags
	rootCmd.Flags().Int("workers", config.DefaultWorkers, "Number of concurrent directory scans")

	// Audit and logging flags
	rootCmd.Flags().String("audit-log", "", "Append an audit line per lookup to this file")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (auto, text, json)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output (debug logging)")

	// Bind flags to viper
	for name, key := range flagBindings {
		flag := rootCmd.Flags().Lookup(name)
		if flag == nil {
			flag = rootCmd.PersistentFlags().Lookup(name)
		}
		viper.BindPFlag(key, flag)
	}

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Build config from viper
	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	logger := newLogger(cfg)

	// Bootstrap and run application
	app, err := bootstrapApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set all default values in Viper
	config.SetViperDefaults()

	// Set default config file name
	viper.SetConfigName(config.ConfigFileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	// Enable environment variables, e.g. VSCODE_ICONS_SERVER_ROOT
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
}
