// Package storage implements the storage collaborator contract (spec.md
// §6.3): after a round's aggregation completes, the Coordinator hands the
// new weights to a Sink. Sink.Write is fire-and-forget from the
// Coordinator's perspective — a failing sink never blocks or fails a
// round.
package storage

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	badger "github.com/dgraph-io/badger/v2"

	"github.com/xainag/xain/common/logging"
	"github.com/xainag/xain/tensor"
)

var logger = logging.GetLogger("storage")

// Sink persists aggregated weights for a completed round.
type Sink interface {
	Write(ctx context.Context, round uint64, weights tensor.List) error
}

// Backend is a Sink backed by an embedded badger key-value store, grounded
// on the teacher's storage/bolt backend shape (New(path) (Backend, error)
// plus a Cleanup method), adapted to badger since that is the KV driver
// actually present in the teacher's go.mod.
type Backend struct {
	db *badger.DB
}

// New opens (creating if absent) a badger database at path.
func New(path string) (*Backend, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger at %q: %w", path, err)
	}
	return &Backend{db: db}, nil
}

// Write stores weights under a key derived from round, overwriting any
// prior value for the same round number.
func (b *Backend) Write(_ context.Context, round uint64, weights tensor.List) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(weights); err != nil {
		return fmt.Errorf("storage: encode round %d weights: %w", round, err)
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roundKey(round), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("storage: write round %d: %w", round, err)
	}
	logger.Debug("wrote round weights", "round", round, "bytes", buf.Len())
	return nil
}

// Read returns the weights stored for round, for tests and operator
// inspection; the Coordinator never reads its own writes back.
func (b *Backend) Read(round uint64) (tensor.List, error) {
	var weights tensor.List
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roundKey(round))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&weights)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: read round %d: %w", round, err)
	}
	return weights, nil
}

// Cleanup closes the underlying database. Safe to call once.
func (b *Backend) Cleanup() error {
	return b.db.Close()
}

func roundKey(round uint64) []byte {
	return []byte(fmt.Sprintf("round/%020d", round))
}
