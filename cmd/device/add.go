package device

import (
	"context"
	"fmt"
	"net/http"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func AddCommand() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Add a new device",
		Description: "Add a new device to the inventory",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Device name", Required: true},
			&cli.StringFlag{Name: "ip", Usage: "IPv4 address", Required: true},
			&cli.StringFlag{Name: "labels", Usage: "Comma-separated key=value labels"},
		}, client.Flags()...),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			deviceName := cmd.GetString("name")
			log.Debug("Adding device", "name", deviceName, "server", cmd.GetString("server"))

			labels, err := parseLabels(cmd.GetString("labels"))
			if err != nil {
				return err
			}
			in := model.DeviceInput{
				Name:   deviceName,
				IP:     cmd.GetString("ip"),
				Labels: labels,
			}

			var device model.Device
			if err := client.FromCommand(cmd).Do(ctx, http.MethodPost, "/api/devices", in, &device); err != nil {
				log.Error("Failed to create device", "error", err, "name", deviceName)
				return err
			}

			log.Info("Device created", "name", device.Name, "id", device.ID)
			fmt.Printf("Device created: %s (ID: %s)\n", device.Name, device.ID)
			return nil
		},
	}
}
