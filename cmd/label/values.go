package label

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/martinsuchenak/labelinv/internal/client"
	"github.com/paularlott/cli"
)

func ValuesCommand() *cli.Command {
	return &cli.Command{
		Name:        "values",
		Usage:       "List values of a label key",
		Description: "List the distinct values devices hold under a label key",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key", Required: true},
		},
		Flags: client.Flags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.GetStringArg("key")

			var values []string
			path := "/api/labels/" + url.PathEscape(key) + "/values"
			if err := client.FromCommand(cmd).Do(ctx, http.MethodGet, path, nil, &values); err != nil {
				return err
			}

			if len(values) == 0 {
				fmt.Println("No values found")
				return nil
			}
			for _, v := range values {
				fmt.Println(v)
			}
			return nil
		},
	}
}
