package local

import (
	"bytes"
	"context"
	"testing"

	"golang.org/x/crypto/blake2b"

	"github.com/blockberries/lapi"
	lapitest "github.com/blockberries/lapi/testing"
	"github.com/blockberries/lapi/types"
)

func TestLedger_Compliance(t *testing.T) {
	lapitest.RunTransportCompliance(t, func(t *testing.T, seed map[string][]byte) lapi.Transport {
		l := NewLedger(lapitest.TestMetadata())
		for k, v := range seed {
			l.Put(types.StorageKey(k), v)
		}
		return l
	})
}

func TestLedger_SubmitRecordsAndHashes(t *testing.T) {
	l := NewLedger(lapitest.TestMetadata())

	xt := []byte{0x84, 0x01, 0x02, 0x03}
	hash, err := l.Submit(context.Background(), xt)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if hash != types.Hash(blake2b.Sum256(xt)) {
		t.Fatalf("hash %s is not the blake2b digest of the extrinsic", hash.Hex())
	}

	recorded := l.Extrinsics()
	if len(recorded) != 1 || !bytes.Equal(recorded[0], xt) {
		t.Fatalf("recorded %x", recorded)
	}

	// Extrinsics returns copies.
	recorded[0][0] = 0xFF
	if l.Extrinsics()[0][0] != 0x84 {
		t.Fatal("Extrinsics exposed internal state")
	}
}

func TestLedger_Metadata(t *testing.T) {
	l := NewLedger(lapitest.TestMetadata())

	meta, err := l.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if _, err := meta.Module("Balances"); err != nil {
		t.Fatalf("served document missing Balances: %v", err)
	}
}
