package device

import (
	"context"
	"net/url"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/paularlott/cli"
)

func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:        "search",
		Usage:       "Search devices",
		Description: "Search devices by name, IP, label key or label value",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			query := cmd.GetStringArg("query")
			log.Debug("Searching devices", "query", query, "server", cmd.GetString("server"))

			devices, err := fetchDevices(ctx, cmd, url.Values{"q": {query}})
			if err != nil {
				return err
			}

			log.Info("Search completed successfully", "query", query, "results", len(devices))
			printDevices(devices)
			return nil
		},
	}
}
