package main

import (
	"fmt"
	"math"
	"os"

	"filippo.io/age"
	"github.com/lightwallet-tools/zecw/internal/config"
	"github.com/lightwallet-tools/zecw/internal/core/application"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/identity"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/lightwalletd"
	dbbadger "github.com/lightwallet-tools/zecw/internal/infrastructure/storage/db/badger"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/walletconfig"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var initwallet = cli.Command{
	Name:  "init",
	Usage: "initialize a new wallet, or recover one from its mnemonic",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the name of the first account of the wallet",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "identity",
			Aliases:  []string{"i"},
			Usage:    "age identity file used to encrypt the mnemonic, generated if missing",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:    "birthday",
			Aliases: []string{"b"},
			Usage:   "the wallet birthday height, defaults to 100 blocks below the chain tip",
		},
		&cli.StringFlag{
			Name:    "network",
			Aliases: []string{"n"},
			Usage:   "the network the wallet operates on, main or test",
			Value:   domain.TestNetwork.Name,
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "the lightwalletd server, ecc, ywallet, zecrocks or <host:port>",
			Value:   lightwalletd.DefaultServer,
		},
		&cli.StringSliceFlag{
			Name:  "recipient",
			Usage: "an additional age1... recipient the mnemonic is encrypted to",
		},
		&cli.StringFlag{
			Name:  "key-source",
			Usage: "metadata describing where the account keys come from",
		},
	},
	Action: initWalletAction,
}

func initWalletAction(ctx *cli.Context) error {
	opts, err := parseInitOpts(ctx)
	if err != nil {
		return err
	}

	client, err := newChainClient(ctx.Context, ctx.String("server"), opts.Network)
	if err != nil {
		return err
	}
	defer client.Close()

	svc := application.NewInitService(
		identity.NewStore(os.Stderr),
		walletconfig.NewStore(),
		dbbadger.NewWalletEngineFactory(log.StandardLogger()),
		terminalPrompter{os.Stdin, os.Stderr},
		application.NewBirthdayResolver(
			client, config.GetUint32(config.BirthdayRoundingKey),
		),
	)

	res, err := svc.Init(ctx.Context, *opts)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"account":    res.Account.ID,
		"birthday":   res.Birthday.Height(),
		"recovering": res.Recovering,
	}).Info("wallet initialized")

	_, err = fmt.Fprintf(ctx.App.Writer, "%s\n", res.Account.ID)
	return err
}

func parseInitOpts(ctx *cli.Context) (*application.InitOpts, error) {
	network, err := domain.ParseNetwork(ctx.String("network"))
	if err != nil {
		return nil, &invalidUsageError{ctx, "init", err.Error()}
	}

	var birthday *uint32
	if ctx.IsSet("birthday") {
		h := ctx.Uint64("birthday")
		if h > math.MaxUint32 {
			return nil, &invalidUsageError{
				ctx, "init", fmt.Sprintf("birthday %d out of range", h),
			}
		}
		b := uint32(h)
		birthday = &b
	}

	recipients := make([]age.Recipient, 0)
	for _, r := range ctx.StringSlice("recipient") {
		recipient, err := age.ParseX25519Recipient(r)
		if err != nil {
			return nil, &invalidUsageError{ctx, "init", err.Error()}
		}
		recipients = append(recipients, recipient)
	}

	return &application.InitOpts{
		WalletDir:       config.GetDatadir(),
		IdentityPath:    ctx.String("identity"),
		AccountName:     ctx.String("name"),
		Birthday:        birthday,
		Network:         network,
		KeySource:       ctx.String("key-source"),
		ExtraRecipients: recipients,
	}, nil
}
