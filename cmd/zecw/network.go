package main

import (
	"context"

	"github.com/lightwallet-tools/zecw/internal/config"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/feeder"
	coinbasefeeder "github.com/lightwallet-tools/zecw/internal/infrastructure/feeder/coinbase"
	geminifeeder "github.com/lightwallet-tools/zecw/internal/infrastructure/feeder/gemini"
	krakenfeeder "github.com/lightwallet-tools/zecw/internal/infrastructure/feeder/kraken"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/lightwalletd"
	"github.com/lightwallet-tools/zecw/internal/infrastructure/tor"
)

func newTransport() (*tor.Transport, error) {
	return tor.NewTransport(
		config.GetString(config.TorProxyKey),
		config.GetBool(config.NoTorKey),
		config.GetDuration(config.RequestTimeoutKey),
	)
}

func newChainClient(
	ctx context.Context, serverSelector string, network domain.Network,
) (ports.ChainClient, error) {
	server, err := lightwalletd.PickServer(serverSelector, network)
	if err != nil {
		return nil, err
	}
	transport, err := newTransport()
	if err != nil {
		return nil, err
	}

	timeout := config.GetDuration(config.RequestTimeoutKey)
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := lightwalletd.NewClient(
		dialCtx, server, network, transport,
		lightwalletd.UnaryInterceptor(timeout),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// newRateSource queries each exchange over its own Tor circuit.
func newRateSource() (ports.RateSource, error) {
	transports := make([]*tor.Transport, 3)
	for i := range transports {
		t, err := newTransport()
		if err != nil {
			return nil, err
		}
		transports[i] = t
	}

	timeout := config.GetDuration(config.RequestTimeoutKey)
	return feeder.NewService(
		feeder.WithTimeout(
			geminifeeder.NewGeminiFeeder(transports[0].HTTPClient(), ""), timeout,
		),
		feeder.WithTimeout(
			krakenfeeder.NewKrakenFeeder(transports[1].WebsocketDialer(), ""), timeout,
		),
		feeder.WithTimeout(
			coinbasefeeder.NewCoinbaseFeeder(transports[2].WebsocketDialer(), ""), timeout,
		),
	), nil
}
