package device

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List all devices",
		Description: "List devices, optionally filtered by label values and status",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "filter", Usage: "Comma-separated key=value label filters (all must match)"},
			&cli.StringFlag{Name: "status", Usage: "Only devices with this status (up, down)"},
		}, client.Flags()...),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			filter, err := parseLabels(cmd.GetString("filter"))
			if err != nil {
				return err
			}

			query := url.Values{}
			for k, v := range filter {
				query.Add("label", k+":"+v)
			}
			if status := cmd.GetString("status"); status != "" {
				query.Set("status", status)
			}
			devices, err := fetchDevices(ctx, cmd, query)
			if err != nil {
				return err
			}

			log.Info("Listed devices successfully", "count", len(devices), "filtered", len(query) > 0)
			printDevices(devices)
			return nil
		},
	}
}

func fetchDevices(ctx context.Context, cmd *cli.Command, query url.Values) ([]model.Device, error) {
	path := "/api/devices"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var devices []model.Device
	if err := client.FromCommand(cmd).Do(ctx, http.MethodGet, path, nil, &devices); err != nil {
		log.Error("Failed to list devices", "error", err, "query", query.Encode())
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	return devices, nil
}

