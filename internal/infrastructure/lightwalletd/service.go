package lightwalletd

import (
	"context"
	"crypto/tls"
	"fmt"
	"math"
	"net"

	"github.com/lightwallet-tools/zecw/internal/core/domain"
	log "github.com/sirupsen/logrus"
	"github.com/zcash/lightwalletd/walletrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ContextDialer opens the raw connections to the server, typically
// through Tor.
type ContextDialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Info describes the server a client is connected to.
type Info struct {
	Version                 string
	Vendor                  string
	ChainName               string
	SaplingActivationHeight uint64
	BlockHeight             uint64
}

// Client is a lightwalletd client bound to a network.
type Client struct {
	server   Server
	network  domain.Network
	conn     *grpc.ClientConn
	streamer walletrpc.CompactTxStreamerClient
}

// NewClient connects to the server through dialer and checks that it
// serves the expected network.
func NewClient(
	ctx context.Context, server Server, network domain.Network,
	dialer ContextDialer, opts ...grpc.DialOption,
) (*Client, error) {
	creds := credentials.NewTLS(&tls.Config{
		ServerName: server.Host,
		MinVersion: tls.VersionTLS12,
	})
	if server.Plaintext {
		creds = insecure.NewCredentials()
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
	}
	if dialer != nil {
		dialOpts = append(dialOpts, grpc.WithContextDialer(
			func(ctx context.Context, addr string) (net.Conn, error) {
				return dialer.DialContext(ctx, "tcp", addr)
			},
		))
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.DialContext(ctx, server.Addr(), dialOpts...)
	if err != nil {
		return nil, err
	}
	client := &Client{
		server, network, conn, walletrpc.NewCompactTxStreamerClient(conn),
	}

	info, err := client.Info(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", server, err)
	}
	if info.ChainName != network.ChainName {
		conn.Close()
		return nil, fmt.Errorf(
			"%w: %s serves %q chain, expected %q",
			domain.ErrNetworkMismatch, server, info.ChainName, network.ChainName,
		)
	}

	log.WithFields(log.Fields{
		"server": server.String(),
		"vendor": info.Vendor,
		"height": info.BlockHeight,
	}).Debug("connected to lightwalletd")

	return client, nil
}

func (c *Client) Info(ctx context.Context) (*Info, error) {
	res, err := c.streamer.GetLightdInfo(ctx, &walletrpc.Empty{})
	if err != nil {
		return nil, err
	}
	return &Info{
		Version:                 res.GetVersion(),
		Vendor:                  res.GetVendor(),
		ChainName:               res.GetChainName(),
		SaplingActivationHeight: res.GetSaplingActivationHeight(),
		BlockHeight:             res.GetBlockHeight(),
	}, nil
}

func (c *Client) LatestHeight(ctx context.Context) (uint32, error) {
	res, err := c.streamer.GetLatestBlock(ctx, &walletrpc.ChainSpec{})
	if err != nil {
		return 0, err
	}
	if res.GetHeight() > math.MaxUint32 {
		return 0, fmt.Errorf("block height %d does not fit 32 bits", res.GetHeight())
	}
	return uint32(res.GetHeight()), nil
}

func (c *Client) TreeState(
	ctx context.Context, height uint64,
) (*domain.TreeState, error) {
	res, err := c.streamer.GetTreeState(ctx, &walletrpc.BlockID{Height: height})
	if err != nil {
		return nil, err
	}
	return &domain.TreeState{
		Network:     res.GetNetwork(),
		Height:      res.GetHeight(),
		Hash:        res.GetHash(),
		Time:        res.GetTime(),
		SaplingTree: res.GetSaplingTree(),
		OrchardTree: res.GetOrchardTree(),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
