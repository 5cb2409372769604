package cli

import (
	"fmt"
	"os"

	"foodie-dashboard/config"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/events"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh <panel>",
		Short: "Ask every running replica to re-trigger a panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())
			if cfg.RedisAddr == "" {
				return fmt.Errorf("redis_addr is required to publish refresh requests")
			}

			rdb, err := config.InitRedis(cmd.Context(), cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer rdb.Close()

			by, _ := os.Hostname()
			bus := events.NewRefreshBus(rdb, cfg.RefreshChannel, newLogger(cfg.LogLevel))
			if err := bus.Publish(cmd.Context(), domain.RefreshRequest{Panel: args[0], RequestedBy: by}); err != nil {
				return fmt.Errorf("failed to publish refresh: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "refresh of %s published on %s\n", args[0], bus.Channel)
			return nil
		},
	}
	cmd.Flags().String("redis-addr", "", "Redis address for the refresh bus")
	return cmd
}
