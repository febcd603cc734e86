package main

import (
	"fmt"

	"github.com/lightwallet-tools/zecw/internal/config"
	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "print the effective configuration",
	Action: configAction,
}

func configAction(ctx *cli.Context) error {
	for _, kv := range config.AllSettings() {
		if _, err := fmt.Fprintf(ctx.App.Writer, "%s = %s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
