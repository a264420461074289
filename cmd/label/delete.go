package label

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
		Usage:       "Delete a global label",
		Description: "Delete a global label and remove its key from every device",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.GetStringArg("id")
			log.Debug("Deleting label", "id", id, "server", cmd.GetString("server"))

			err := client.FromCommand(cmd).Do(ctx, http.MethodDelete, "/api/labels/"+id, nil, nil)
			if errors.Is(err, client.ErrNotFound) {
				log.Warn("Label not found for deletion", "id", id)
				return fmt.Errorf("label not found")
			}
			if err != nil {
				return err
			}

			log.Info("Label deleted successfully", "id", id)
			fmt.Println("Label deleted")
			return nil
		},
	}
}
