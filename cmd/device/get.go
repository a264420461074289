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

func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "get",
		Usage:       "Get a device",
		Description: "Get a device by ID",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.GetStringArg("id")
			log.Debug("Getting device", "id", id, "server", cmd.GetString("server"))

			var device model.Device
			err := client.FromCommand(cmd).Do(ctx, http.MethodGet, "/api/devices/"+id, nil, &device)
			if errors.Is(err, client.ErrNotFound) {
				log.Warn("Device not found", "id", id)
				return fmt.Errorf("device not found")
			}
			if err != nil {
				log.Error("Failed to get device", "error", err, "id", id)
				return err
			}

			printDevice(&device)
			return nil
		},
	}
}
