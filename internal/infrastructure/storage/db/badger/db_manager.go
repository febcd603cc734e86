package dbbadger

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/timshannon/badgerhold/v4"
)

// DbLocation is the directory, relative to the wallet dir, holding the
// wallet engine storage.
const DbLocation = "db"

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

// createDb opens the store under walletDir, or an in-memory one if
// walletDir is empty.
func createDb(walletDir string, logger badger.Logger) (*badgerhold.Store, error) {
	var dbDir string
	if len(walletDir) > 0 {
		dbDir = filepath.Join(walletDir, DbLocation)
	}
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
