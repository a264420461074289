package device

import (
	"context"
	"fmt"
	"net/http"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:        "stats",
		Usage:       "Show device counts",
		Description: "Show total, up and down device counts",
		Flags:       client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			var stats model.DeviceStats
			if err := client.FromCommand(cmd).Do(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
				return err
			}
			fmt.Printf("Total: %d\nUp:    %d\nDown:  %d\n", stats.Total, stats.Up, stats.Down)
			return nil
		},
	}
}
