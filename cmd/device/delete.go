package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/paularlott/cli"
)

func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:        "delete",
		Usage:       "Delete a device",
		Description: "Delete a device from the inventory",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.GetStringArg("id")
			log.Debug("Deleting device", "id", id)

			err := client.FromCommand(cmd).Do(ctx, http.MethodDelete, "/api/devices/"+id, nil, nil)
			if errors.Is(err, client.ErrNotFound) {
				log.Warn("Device not found for deletion", "id", id)
				return fmt.Errorf("device not found")
			}
			if err != nil {
				return err
			}

			fmt.Println("Device deleted")
			return nil
		},
	}
}
