// Package lapitest provides test utilities for client development: a
// configurable mock transport and signer, a fixture metadata document,
// a harness, and a transport compliance suite.
package lapitest

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/types"
)

// Compile-time interface checks.
var (
	_ lapi.Transport = (*MockTransport)(nil)
	_ lapi.Signer    = (*MockSigner)(nil)
)

// MockTransport is a configurable in-memory transport. Unconfigured
// methods fall back to a key-value store seeded via Set, and a Submit
// that records the extrinsic and echoes SubmitHash.
type MockTransport struct {
	mu    sync.Mutex
	store map[string][]byte

	// Configurable handlers. If nil, defaults are used.
	FetchFn  func(context.Context, types.StorageKey) ([]byte, bool, error)
	SubmitFn func(context.Context, []byte) (types.Hash, error)

	// SubmitHash is echoed by the default Submit handler.
	SubmitHash types.Hash

	// Submitted collects extrinsics seen by the default Submit handler.
	Submitted [][]byte

	// Call counters (atomic for concurrent access).
	FetchCalls  atomic.Int64
	SubmitCalls atomic.Int64
}

// Set seeds a raw value at a storage key.
func (m *MockTransport) Set(key types.StorageKey, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	m.store[string(key)] = append([]byte(nil), value...)
}

func (m *MockTransport) Fetch(ctx context.Context, key types.StorageKey) ([]byte, bool, error) {
	m.FetchCalls.Add(1)
	if m.FetchFn != nil {
		return m.FetchFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, found := m.store[string(key)]
	if !found {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MockTransport) Submit(ctx context.Context, extrinsic []byte) (types.Hash, error) {
	m.SubmitCalls.Add(1)
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, extrinsic)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submitted = append(m.Submitted, append([]byte(nil), extrinsic...))
	return m.SubmitHash, nil
}

// MockSigner signs by hashing: Sign returns a deterministic 64-byte
// pseudo-signature so extrinsic framing can be asserted byte-for-byte.
type MockSigner struct {
	Account types.AccountID

	// SignFn overrides the default deterministic signature.
	SignFn func(payload []byte) (types.Signature, error)
}

func (s *MockSigner) AccountID() types.AccountID {
	return s.Account
}

func (s *MockSigner) Sign(payload []byte) (types.Signature, error) {
	if s.SignFn != nil {
		return s.SignFn(payload)
	}
	sig := pseudoSign(s.Account, payload)
	return sig, nil
}
