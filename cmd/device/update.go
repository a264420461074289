package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:        "update",
		Usage:       "Update a device",
		Description: "Update an existing device. Label entries are merged into the current labels; key= removes a label.",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id", Required: true},
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Device name"},
			&cli.StringFlag{Name: "ip", Usage: "IPv4 address"},
			&cli.StringFlag{Name: "labels", Usage: "Comma-separated key=value labels"},
		}, client.Flags()...),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.GetStringArg("id")
			log.Debug("Updating device", "id", id, "server", cmd.GetString("server"))

			changes, err := parseLabels(cmd.GetString("labels"))
			if err != nil {
				return err
			}

			c := client.FromCommand(cmd)
			var current model.Device
			err = c.Do(ctx, http.MethodGet, "/api/devices/"+id, nil, &current)
			if errors.Is(err, client.ErrNotFound) {
				log.Warn("Device not found for update", "id", id)
				return fmt.Errorf("device not found")
			}
			if err != nil {
				return err
			}

			in := mergeInput(current, cmd.GetString("name"), cmd.GetString("ip"), changes)
			var updated model.Device
			if err := c.Do(ctx, http.MethodPut, "/api/devices/"+id, in, &updated); err != nil {
				log.Error("Failed to update device", "error", err, "id", id)
				return err
			}

			log.Info("Device updated successfully", "id", id)
			fmt.Println("Device updated")
			printDevice(&updated)
			return nil
		},
	}
}

// mergeInput applies the non-empty flag values on top of the current device
func mergeInput(current model.Device, name, ip string, labels map[string]string) model.DeviceInput {
	in := model.DeviceInput{
		Name:   current.Name,
		IP:     current.IP,
		Labels: make(map[string]string, len(current.Labels)),
	}
	if name != "" {
		in.Name = name
	}
	if ip != "" {
		in.IP = ip
	}
	for k, v := range current.Labels {
		in.Labels[k] = v
	}
	for k, v := range labels {
		if v == "" {
			delete(in.Labels, k)
			continue
		}
		in.Labels[k] = v
	}
	return in
}
