package label

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

func RenameCommand() *cli.Command {
	return &cli.Command{
		Name:        "rename",
		Usage:       "Rename a global label",
		Description: "Rename a global label; every device value under the old key moves to the new key",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id", Required: true},
			&cli.StringArg{Name: "key", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.GetStringArg("id")
			key := cmd.GetStringArg("key")
			log.Debug("Renaming label", "id", id, "key", key)

			var label model.GlobalLabel
			err := client.FromCommand(cmd).Do(ctx, http.MethodPut, "/api/labels/"+id, map[string]string{"key": key}, &label)
			if errors.Is(err, client.ErrNotFound) {
				log.Warn("Label not found for rename", "id", id)
				return fmt.Errorf("label not found")
			}
			if err != nil {
				return err
			}

			log.Info("Label renamed successfully", "id", id, "key", label.Key)
			fmt.Printf("Label renamed to %s\n", label.Key)
			return nil
		},
	}
}
