package main

import (
	"context"
	"fmt"
	"os"

	"github.com/martinsuchenak/labelinv/cmd/device"
	"github.com/martinsuchenak/labelinv/cmd/label"
	"github.com/martinsuchenak/labelinv/cmd/server"
	"github.com/paularlott/cli"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "labelinv",
		Version: version,
		Usage:   "Network device inventory with global labels",
		Commands: []*cli.Command{
			server.Command(),
			{
				Name:     "device",
				Usage:    "Manage devices",
				Commands: device.Commands(),
			},
			{
				Name:     "label",
				Usage:    "Manage global labels",
				Commands: label.Commands(),
			},
		},
	}

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
