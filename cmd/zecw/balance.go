package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/config"
	"github.com/lightwallet-tools/zecw/internal/core/application"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	dbbadger "github.com/lightwallet-tools/zecw/internal/infrastructure/storage/db/badger"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/walletconfig"
	"github.com/mitchellh/go-wordwrap"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/currency"
)

const detailIndent = "    "

var balance = cli.Command{
	Name:      "balance",
	Usage:     "show the balance of an account",
	ArgsUsage: "[account UUID]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "convert",
			Aliases: []string{"c"},
			Usage:   "also show values in the given currency (ISO 4217 code)",
		},
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	var accountID *uuid.UUID
	if ctx.NArg() > 1 {
		return &invalidUsageError{ctx, "balance", "too many arguments"}
	}
	if arg := ctx.Args().First(); arg != "" {
		id, err := uuid.Parse(arg)
		if err != nil {
			return &invalidUsageError{
				ctx, "balance", fmt.Sprintf("invalid account UUID %q", arg),
			}
		}
		accountID = &id
	}

	var convert *currency.Unit
	if code := ctx.String("convert"); code != "" {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return &invalidUsageError{
				ctx, "balance", fmt.Sprintf("invalid currency %q", code),
			}
		}
		convert = &unit
	}

	walletDir := config.GetDatadir()
	record, err := walletconfig.NewStore().Load(walletDir)
	if err != nil {
		return err
	}
	network, err := record.NetworkParams()
	if err != nil {
		return err
	}

	engine, err := dbbadger.NewWalletEngine(walletDir, network, log.StandardLogger())
	if err != nil {
		return err
	}
	defer engine.Close()

	var rates ports.RateSource
	if convert != nil {
		if rates, err = newRateSource(); err != nil {
			return err
		}
	}

	reporter := application.NewBalanceReporter(
		engine, rates, config.GetBool(config.TransparentPoolKey),
	)
	report, err := reporter.Report(ctx.Context, accountID, convert)
	if err != nil {
		return err
	}

	return renderReport(
		ctx.App.Writer, report, uint(config.GetInt(config.TextWidthKey)),
	)
}

// renderReport prints the report with the address on top and one
// indented line per detail, each wrapped to width.
func renderReport(
	w io.Writer, report *application.BalanceReport, width uint,
) error {
	if report.Insufficient() {
		_, err := fmt.Fprintln(w, application.InsufficientSummaryMessage)
		return err
	}

	// A non-breaking space keeps the label on the same line as the address.
	address := wordwrap.WrapString("Address:\u00a0"+report.Address, width)
	if _, err := fmt.Fprintf(w, "%s\n\n", address); err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	for _, line := range report.Lines {
		text := indent(line.String(), width)
		var err error
		if line.Highlight {
			_, err = green.Fprintln(w, text)
		} else {
			_, err = fmt.Fprintln(w, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func indent(s string, width uint) string {
	if width > uint(len(detailIndent)) {
		s = wordwrap.WrapString(s, width-uint(len(detailIndent)))
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = detailIndent + l
	}
	return strings.Join(lines, "\n")
}
