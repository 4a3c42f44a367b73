// Package local provides an in-process ledger stub: an in-memory
// key-value store that satisfies the client's transport contract and
// serves a metadata document, with no node or network involved.
//
// It backs examples and transport tests. Submitted extrinsics are not
// executed; they are recorded and acknowledged with their blake2b
// hash, which is exactly what the client-side contract needs.
package local

import (
	"context"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// Compile-time interface check.
var _ lapi.Transport = (*Ledger)(nil)

// Ledger is an in-memory ledger state. Safe for concurrent use.
type Ledger struct {
	meta *metadata.Metadata

	mu         sync.RWMutex
	store      map[string][]byte
	extrinsics [][]byte
}

// NewLedger creates an empty ledger describing itself with meta.
func NewLedger(meta *metadata.Metadata) *Ledger {
	return &Ledger{
		meta:  meta,
		store: make(map[string][]byte),
	}
}

// Put writes a raw value at a storage key.
func (l *Ledger) Put(key types.StorageKey, value []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store[string(key)] = append([]byte(nil), value...)
}

// Fetch implements lapi.Transport.
func (l *Ledger) Fetch(_ context.Context, key types.StorageKey) ([]byte, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	value, found := l.store[string(key)]
	if !found {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Submit implements lapi.Transport. The extrinsic is recorded and
// acknowledged with its blake2b-256 hash.
func (l *Ledger) Submit(_ context.Context, extrinsic []byte) (types.Hash, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.extrinsics = append(l.extrinsics, append([]byte(nil), extrinsic...))
	return types.Hash(blake2b.Sum256(extrinsic)), nil
}

// Metadata returns the ledger's metadata document.
func (l *Ledger) Metadata(_ context.Context) (*metadata.Metadata, error) {
	return l.meta, nil
}

// Extrinsics returns copies of all submitted extrinsics in order.
func (l *Ledger) Extrinsics() [][]byte {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([][]byte, len(l.extrinsics))
	for i, xt := range l.extrinsics {
		out[i] = append([]byte(nil), xt...)
	}
	return out
}
