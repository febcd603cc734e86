package domain

import "strings"

// Network holds the parameters of a Zcash network this wallet can be used
// with.
type Network struct {
	// Name is the name persisted in the wallet config.
	Name string
	// ChainName is the chain name reported by lightwalletd servers.
	ChainName string
	// CoinType is the SLIP-44 coin type.
	CoinType uint32
	// AddressHRP is the human readable part of the addresses generated by
	// the local wallet engine.
	AddressHRP string
	// SaplingActivationHeight is the first height a shielded birthday can
	// meaningfully point to.
	SaplingActivationHeight uint32
}

var (
	MainNetwork = Network{
		Name:                    "main",
		ChainName:               "main",
		CoinType:                133,
		AddressHRP:              "zecw",
		SaplingActivationHeight: 419200,
	}
	TestNetwork = Network{
		Name:                    "test",
		ChainName:               "test",
		CoinType:                1,
		AddressHRP:              "zecwtest",
		SaplingActivationHeight: 280000,
	}
)

// ParseNetwork accepts "main"/"mainnet" and "test"/"testnet".
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "main", "mainnet":
		return MainNetwork, nil
	case "test", "testnet":
		return TestNetwork, nil
	default:
		return Network{}, ErrUnknownNetwork
	}
}

func (n Network) String() string {
	return n.Name
}

func (n Network) IsMainnet() bool {
	return n.Name == MainNetwork.Name
}
