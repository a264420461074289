package label

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
		Usage:       "Add a global label",
		Description: "Add a global label. The key is lowercased and whitespace runs become underscores.",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.GetStringArg("key")
			log.Debug("Adding label", "key", key, "server", cmd.GetString("server"))

			var label model.GlobalLabel
			body := map[string]string{"key": key}
			if err := client.FromCommand(cmd).Do(ctx, http.MethodPost, "/api/labels", body, &label); err != nil {
				log.Error("Failed to create label", "error", err, "key", key)
				return err
			}

			log.Info("Label created", "id", label.ID, "key", label.Key)
			fmt.Printf("Label created: %s (ID: %s)\n", label.Key, label.ID)
			return nil
		},
	}
}
