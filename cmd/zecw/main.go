package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/lightwallet-tools/zecw/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"

	// tasks numbers the units of work of the process, to tell their log
	// lines apart.
	tasks atomic.Uint64
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = version
	app.Name = "zecw"
	app.Usage = "Zcash light wallet key custody and balance reporting"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "the wallet directory, overrides ZECW_DATADIR",
		},
	}
	app.Before = setup
	app.Commands = append(
		app.Commands,
		&initwallet,
		&balance,
		&configCmd,
	)
	return app
}

func setup(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	if dir := ctx.String("dir"); dir != "" {
		config.Set(config.DatadirKey, dir)
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	log.AddHook(taskHook{nextTaskName()})
	return nil
}

func nextTaskName() string {
	return fmt.Sprintf("zecw-task-%d", tasks.Add(1))
}

// taskHook tags every log entry with the name of the running task.
type taskHook struct {
	name string
}

func (h taskHook) Levels() []log.Level {
	return log.AllLevels
}

func (h taskHook) Fire(entry *log.Entry) error {
	entry.Data["task"] = h.name
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
	reason  string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s: %s", e.command, e.reason)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_, _ = fmt.Fprintf(os.Stderr, "[zecw] %s\n\n", e.reason)
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[zecw] %v\n", err)
	}
	os.Exit(1)
}
