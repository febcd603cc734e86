package dbbadger

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	"github.com/lightwallet-tools/zecw/pkg/secret"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/crypto/blake2b"
)

const (
	metaKey    = "wallet"
	summaryKey = "summary"
)

var (
	fingerprintKey = []byte("zecw-seed-fingerprint")
	receiverKey    = []byte("zecw-default-receiver")
)

type walletMeta struct {
	Network string
	Created time.Time
}

type account struct {
	ID              string
	Index           uint32
	SeedIndex       uint32
	Name            string
	KeySource       string
	SeedFingerprint string
	BirthdayHeight  uint32
	BirthdayHash    string
	BirthdayTime    uint32
	SaplingTreeSize uint64
	OrchardTreeSize uint64
	RecoverUntil    *uint32
	Address         string
	Created         time.Time
}

func (a account) toDomain() (*domain.Account, error) {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored account id: %w", err)
	}
	return &domain.Account{
		ID:             id,
		Name:           a.Name,
		KeySource:      a.KeySource,
		BirthdayHeight: a.BirthdayHeight,
		RecoverUntil:   a.RecoverUntil,
		Created:        a.Created,
	}, nil
}

// WalletEngine is the local wallet storage of a wallet directory. It keeps
// accounts, their receiving address and the last computed wallet summary.
// Seeds are only used to derive fingerprints and addresses and are never
// stored.
type WalletEngine struct {
	store   *badgerhold.Store
	network domain.Network
}

// NewWalletEngine opens, or creates, the storage under walletDir for the
// given network. An empty walletDir opens an in-memory storage. Opening a
// storage created for another network fails.
func NewWalletEngine(
	walletDir string, network domain.Network, logger badger.Logger,
) (*WalletEngine, error) {
	store, err := createDb(walletDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	engine := &WalletEngine{store, network}
	if err := engine.checkNetwork(); err != nil {
		store.Close()
		return nil, err
	}
	return engine, nil
}

type engineFactory struct {
	logger badger.Logger
}

// NewWalletEngineFactory returns a factory opening badger backed engines.
func NewWalletEngineFactory(logger badger.Logger) ports.WalletEngineFactory {
	return engineFactory{logger}
}

func (f engineFactory) Open(
	walletDir string, network domain.Network,
) (ports.WalletEngine, error) {
	return NewWalletEngine(walletDir, network, f.logger)
}

func (e *WalletEngine) checkNetwork() error {
	var meta walletMeta
	err := e.store.Get(metaKey, &meta)
	if err == nil {
		if meta.Network != e.network.Name {
			return fmt.Errorf(
				"%w: wallet storage belongs to %s network",
				domain.ErrNetworkMismatch, meta.Network,
			)
		}
		return nil
	}
	if !errors.Is(err, badgerhold.ErrNotFound) {
		return err
	}

	return e.store.Insert(metaKey, walletMeta{
		Network: e.network.Name,
		Created: time.Now(),
	})
}

func (e *WalletEngine) CreateAccount(
	ctx context.Context, name string, seed *secret.Buffer,
	birthday *domain.AccountBirthday, keySource string,
) (*domain.Account, error) {
	if seed.Len() == 0 {
		return nil, ErrEmptySeed
	}
	if birthday == nil {
		return nil, ErrMissingBirthday
	}

	fingerprint := seedFingerprint(seed.Bytes(), e.network)

	var sameSeed []account
	query := badgerhold.Where("SeedFingerprint").Eq(fingerprint)
	if err := e.store.Find(&sameSeed, query); err != nil {
		return nil, err
	}
	count, err := e.store.Count(&account{}, nil)
	if err != nil {
		return nil, err
	}

	seedIndex := uint32(len(sameSeed))
	address, err := deriveAddress(seed.Bytes(), e.network, seedIndex)
	if err != nil {
		return nil, err
	}

	prior := birthday.PriorChainState()
	var recoverUntil *uint32
	if h, ok := birthday.RecoverUntil(); ok {
		recoverUntil = &h
	}

	acc := account{
		ID:              uuid.New().String(),
		Index:           uint32(count),
		SeedIndex:       seedIndex,
		Name:            name,
		KeySource:       keySource,
		SeedFingerprint: fingerprint,
		BirthdayHeight:  birthday.Height(),
		BirthdayHash:    hex.EncodeToString(prior.BlockHash[:]),
		BirthdayTime:    prior.BlockTime,
		SaplingTreeSize: prior.SaplingTree.Size(),
		OrchardTreeSize: prior.OrchardTree.Size(),
		RecoverUntil:    recoverUntil,
		Address:         address,
		Created:         time.Now().UTC(),
	}
	if err := e.store.Insert(acc.ID, &acc); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return nil, domain.ErrAccountAlreadyExists
		}
		return nil, err
	}

	return acc.toDomain()
}

func (e *WalletEngine) AccountIDs(ctx context.Context) ([]uuid.UUID, error) {
	var accounts []account
	if err := e.store.Find(&accounts, nil); err != nil {
		return nil, err
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Index < accounts[j].Index
	})

	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid stored account id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (e *WalletEngine) Account(
	ctx context.Context, id uuid.UUID,
) (*domain.Account, error) {
	acc, err := e.getAccount(id)
	if err != nil || acc == nil {
		return nil, err
	}
	return acc.toDomain()
}

func (e *WalletEngine) LastGeneratedAddress(
	ctx context.Context, id uuid.UUID,
) (string, error) {
	acc, err := e.getAccount(id)
	if err != nil {
		return "", err
	}
	if acc == nil {
		return "", domain.ErrAccountNotFound
	}
	return acc.Address, nil
}

func (e *WalletEngine) WalletSummary(
	ctx context.Context,
) (*domain.WalletSummary, error) {
	var summary domain.WalletSummary
	if err := e.store.Get(summaryKey, &summary); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// PutWalletSummary stores the summary computed by the last sync, replacing
// the previous one.
func (e *WalletEngine) PutWalletSummary(
	ctx context.Context, summary domain.WalletSummary,
) error {
	return e.store.Upsert(summaryKey, &summary)
}

func (e *WalletEngine) Close() error {
	return e.store.Close()
}

func (e *WalletEngine) getAccount(id uuid.UUID) (*account, error) {
	var acc account
	if err := e.store.Get(id.String(), &acc); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

func seedFingerprint(seed []byte, network domain.Network) string {
	h, _ := blake2b.New256(fingerprintKey)
	h.Write(seed)
	binary.Write(h, binary.BigEndian, network.CoinType)
	return hex.EncodeToString(h.Sum(nil))
}

func deriveAddress(
	seed []byte, network domain.Network, index uint32,
) (string, error) {
	h, _ := blake2b.New256(receiverKey)
	h.Write(seed)
	binary.Write(h, binary.BigEndian, network.CoinType)
	binary.Write(h, binary.BigEndian, index)
	receiver := h.Sum(nil)
	defer secret.Wipe(receiver)

	data, err := bech32.ConvertBits(receiver, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(network.AddressHRP, data)
}
