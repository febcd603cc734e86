package lightwalletd

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/lightwallet-tools/zecw/internal/core/domain"
)

const DefaultServer = "ecc"

// Server is a lightwalletd endpoint.
type Server struct {
	Host string
	Port int
	// Plaintext disables TLS. Only meant for local servers.
	Plaintext bool
}

func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s Server) String() string {
	return s.Addr()
}

type operator struct {
	main *Server
	test *Server
}

var operators = map[string]operator{
	"ecc": {
		main: &Server{Host: "mainnet.lightwalletd.com", Port: 9067},
		test: &Server{Host: "lightwalletd.testnet.electriccoin.co", Port: 9067},
	},
	"ywallet": {
		main: &Server{Host: "lwd1.zcash-infra.com", Port: 9067},
	},
	"zecrocks": {
		main: &Server{Host: "zec.rocks", Port: 443},
		test: &Server{Host: "testnet.zec.rocks", Port: 443},
	},
}

// PickServer resolves a server selector, either a known operator name or a
// host:port pair, to the endpoint to use on the given network.
func PickServer(selector string, network domain.Network) (Server, error) {
	selector = strings.TrimSpace(selector)
	if op, ok := operators[strings.ToLower(selector)]; ok {
		server := op.test
		if network.IsMainnet() {
			server = op.main
		}
		if server == nil {
			return Server{}, fmt.Errorf(
				"%s has no server for %s network", selector, network,
			)
		}
		return *server, nil
	}

	host, portStr, err := net.SplitHostPort(selector)
	if err != nil {
		return Server{}, fmt.Errorf(
			"invalid server %q, must be one of ecc, ywallet, zecrocks or "+
				"a host:port pair", selector,
		)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 || host == "" {
		return Server{}, fmt.Errorf("invalid server address %q", selector)
	}
	return Server{Host: host, Port: port}, nil
}
