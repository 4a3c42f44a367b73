package lapitest

import (
	"context"
	"testing"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/codec"
	"github.com/blockberries/lapi/types"
)

// Harness wires a Client over the fixture metadata, a MockTransport
// and a MockSigner, with helpers that fail the test on unexpected
// errors.
type Harness struct {
	t *testing.T

	Client    *lapi.Client
	Transport *MockTransport
	Signer    *MockSigner
}

// NewHarness creates a harness signing as the given account.
func NewHarness(t *testing.T, signer types.AccountID) *Harness {
	t.Helper()
	transport := &MockTransport{}
	return &Harness{
		t:         t,
		Client:    lapi.New(TestMetadata(), transport, lapi.BasicRuntime{}),
		Transport: transport,
		Signer:    &MockSigner{Account: signer},
	}
}

// SetNonce seeds System.AccountNonce for an account.
func (h *Harness) SetNonce(account types.AccountID, nonce types.Index) {
	h.t.Helper()
	h.Transport.Set(h.storageKey("System", "AccountNonce", account), codec.EncodeIndex(nonce))
}

// SetFreeBalance seeds Balances.FreeBalance for an account.
func (h *Harness) SetFreeBalance(account types.AccountID, balance types.Balance) {
	h.t.Helper()
	h.Transport.Set(h.storageKey("Balances", "FreeBalance", account), codec.EncodeBalance(balance))
}

func (h *Harness) storageKey(module, item string, account types.AccountID) types.StorageKey {
	h.t.Helper()
	mod, err := h.Client.Metadata().Module(module)
	if err != nil {
		h.t.Fatalf("resolve %s: %v", module, err)
	}
	entry, err := mod.Storage(item)
	if err != nil {
		h.t.Fatalf("resolve %s.%s: %v", module, item, err)
	}
	m, err := entry.Map()
	if err != nil {
		h.t.Fatalf("%s.%s as map: %v", module, item, err)
	}
	return m.Key(account[:])
}

// FreeBalance reads and awaits an account's free balance.
func (h *Harness) FreeBalance(account types.AccountID) types.Balance {
	h.t.Helper()
	fut, err := h.Client.FreeBalance(context.Background(), account)
	if err != nil {
		h.t.Fatalf("FreeBalance: %v", err)
	}
	b, err := fut.Await(context.Background())
	if err != nil {
		h.t.Fatalf("FreeBalance await: %v", err)
	}
	return b
}

// AccountNonce reads and awaits an account's nonce.
func (h *Harness) AccountNonce(account types.AccountID) types.Index {
	h.t.Helper()
	fut, err := h.Client.AccountNonce(context.Background(), account)
	if err != nil {
		h.t.Fatalf("AccountNonce: %v", err)
	}
	n, err := fut.Await(context.Background())
	if err != nil {
		h.t.Fatalf("AccountNonce await: %v", err)
	}
	return n
}

// MustTransfer stages a transfer, submits it, and awaits the hash.
func (h *Harness) MustTransfer(to types.Address, amount types.Balance) types.Hash {
	h.t.Helper()
	xt, err := h.Client.XtBuilder(h.Signer).Transfer(to, amount)
	if err != nil {
		h.t.Fatalf("Transfer: %v", err)
	}
	hash, err := xt.Submit(context.Background()).Await(context.Background())
	if err != nil {
		h.t.Fatalf("Submit await: %v", err)
	}
	return hash
}
