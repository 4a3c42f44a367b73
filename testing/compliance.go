package lapitest

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/types"
)

// RunTransportCompliance verifies that a transport implementation
// honors the contract the client relies on: absent keys report
// found=false without error, present keys round-trip their bytes, and
// submissions return a hash.
//
// The factory must return a fresh transport primed with the given
// key-value state for each call.
func RunTransportCompliance(t *testing.T, factory func(t *testing.T, seed map[string][]byte) lapi.Transport) {
	t.Helper()

	t.Run("absent_key_not_found", func(t *testing.T) {
		tr := factory(t, nil)
		value, found, err := tr.Fetch(context.Background(), types.StorageKey("no-such-key"))
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if found {
			t.Fatalf("expected found=false, got value %x", value)
		}
	})

	t.Run("present_key_round_trips", func(t *testing.T) {
		key := types.StorageKey{0xAA, 0xBB}
		want := []byte{1, 2, 3, 4}
		tr := factory(t, map[string][]byte{string(key): want})

		value, found, err := tr.Fetch(context.Background(), key)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if !found {
			t.Fatal("expected found=true")
		}
		if string(value) != string(want) {
			t.Fatalf("value mismatch: got %x, want %x", value, want)
		}
	})

	t.Run("empty_value_is_present", func(t *testing.T) {
		// A stored empty value must not collapse into absence.
		key := types.StorageKey{0x01}
		tr := factory(t, map[string][]byte{string(key): {}})

		_, found, err := tr.Fetch(context.Background(), key)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if !found {
			t.Fatal("empty value reported as absent")
		}
	})

	t.Run("submit_returns_hash", func(t *testing.T) {
		tr := factory(t, nil)
		if _, err := tr.Submit(context.Background(), []byte{0x84, 0x01, 0x02}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	})

	t.Run("concurrent_fetch", func(t *testing.T) {
		seed := make(map[string][]byte)
		for i := 0; i < 8; i++ {
			seed[fmt.Sprintf("key-%d", i)] = []byte{byte(i)}
		}
		tr := factory(t, seed)

		var g errgroup.Group
		for i := 0; i < 8; i++ {
			key := types.StorageKey(fmt.Sprintf("key-%d", i))
			want := byte(i)
			g.Go(func() error {
				value, found, err := tr.Fetch(context.Background(), key)
				if err != nil {
					return err
				}
				if !found || len(value) != 1 || value[0] != want {
					return fmt.Errorf("key %q: got %x found=%v", key, value, found)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("concurrent Fetch: %v", err)
		}
	})
}
