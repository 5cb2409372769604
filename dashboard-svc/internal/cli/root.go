// Package cli wires configuration, infrastructure and the dashboard packages
// into the dashboard-svc commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"foodie-dashboard/config"
	"foodie-dashboard/dashboard-svc/internal/client"
	"foodie-dashboard/dashboard-svc/internal/page"
	"foodie-dashboard/dashboard-svc/internal/panel"
	"foodie-dashboard/dashboard-svc/internal/render"

	"github.com/spf13/cobra"
)

var cfgFile string

type configKey struct{}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dashboard-svc",
		Short: "Restaurant analytics dashboard",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.String("api-base-url", "", "analytics API base URL")
	flags.Duration("request-timeout", 0, "per-panel request timeout (0 disables)")
	flags.String("locale", "", "number formatting locale")
	flags.String("log-level", "", "debug|info|warn|error")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newRefreshCmd())
	return rootCmd
}

func Execute() error {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// pageDeps builds what every page instance shares. The transport timeout is
// left to the loaders so that a timeout surfaces as a panel error.
func pageDeps(cfg *config.Config, observer panel.Observer, logger *slog.Logger) page.Deps {
	api := client.New(client.Config{BaseURL: cfg.APIBaseURL}, &http.Client{}, logger)
	return page.Deps{
		API:       api,
		Renderer:  render.NewRenderer(render.NewFormatter(cfg.Locale)),
		Observer:  observer,
		Logger:    logger,
		Timeout:   cfg.RequestTimeout,
		ChartSize: panel.ChartSize{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
		PublicURL: cfg.PublicURL,
	}
}
