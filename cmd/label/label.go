package label

import (
	"fmt"

	"github.com/martinsuchenak/labelinv/internal/model"
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		AddCommand(),
		ListCommand(),
		RenameCommand(),
		DeleteCommand(),
		ValuesCommand(),
	}
}

func printLabels(labels []model.LabelUsage) {
	if len(labels) == 0 {
		fmt.Println("No labels found")
		return
	}
	for _, l := range labels {
		fmt.Printf("%s\t%s\t%d devices\n", l.ID, l.Key, l.DeviceCount)
	}
}
