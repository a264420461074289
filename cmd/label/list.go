package label

import (
	"context"
	"net/http"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List global labels",
		Description: "List global labels with the number of devices using each",
		Flags:       client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			var labels []model.LabelUsage
			if err := client.FromCommand(cmd).Do(ctx, http.MethodGet, "/api/labels", nil, &labels); err != nil {
				log.Error("Failed to list labels", "error", err)
				return err
			}

			log.Info("Listed labels successfully", "count", len(labels))
			printLabels(labels)
			return nil
		},
	}
}
