package lapigrpc_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blockberries/lapi"
	lapigrpc "github.com/blockberries/lapi/grpc"
	"github.com/blockberries/lapi/local"
	"github.com/blockberries/lapi/metadata"
	lapitest "github.com/blockberries/lapi/testing"
	"github.com/blockberries/lapi/types"
)

// startServer starts a gRPC server on a random port and returns the
// listener address and a cleanup function.
func startServer(t *testing.T, srv *lapigrpc.Server) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := grpc.NewServer()
	srv.Register(s)

	go func() {
		if err := s.Serve(lis); err != nil {
			// Ignore errors from graceful stop.
		}
	}()

	return lis.Addr().String(), func() {
		s.GracefulStop()
	}
}

func dial(t *testing.T, addr string) *lapigrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := lapigrpc.Dial(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func TestGRPC_TransportCompliance(t *testing.T) {
	lapitest.RunTransportCompliance(t, func(t *testing.T, seed map[string][]byte) lapi.Transport {
		ledger := local.NewLedger(lapitest.TestMetadata())
		for k, v := range seed {
			ledger.Put(types.StorageKey(k), v)
		}

		addr, stop := startServer(t, lapigrpc.NewServer(ledger))
		t.Cleanup(stop)

		client := dial(t, addr)
		t.Cleanup(func() { client.Close() })
		return client
	})
}

func TestGRPC_SubmitReachesNode(t *testing.T) {
	ledger := local.NewLedger(lapitest.TestMetadata())
	addr, stop := startServer(t, lapigrpc.NewServer(ledger))
	defer stop()

	client := dial(t, addr)
	defer client.Close()

	xt := []byte{0x84, 0x01, 0x02}
	hash, err := client.Submit(context.Background(), xt)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if hash == (types.Hash{}) {
		t.Fatal("expected a non-zero acknowledgement hash")
	}

	recorded := ledger.Extrinsics()
	if len(recorded) != 1 || !bytes.Equal(recorded[0], xt) {
		t.Fatalf("node recorded %x", recorded)
	}
}

func TestGRPC_MetadataRebuildsResolver(t *testing.T) {
	ledger := local.NewLedger(lapitest.TestMetadata())
	addr, stop := startServer(t, lapigrpc.NewServer(ledger))
	defer stop()

	client := dial(t, addr)
	defer client.Close()

	meta, err := client.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}

	// The rebuilt document resolves exactly like the served one and
	// derives the same storage keys.
	want := lapitest.TestMetadata()
	for _, modName := range []string{"System", "Balances"} {
		got, err := meta.Module(modName)
		if err != nil {
			t.Fatalf("rebuilt document missing %s: %v", modName, err)
		}
		orig, _ := want.Module(modName)
		if got.Index() != orig.Index() {
			t.Errorf("%s index %d, want %d", modName, got.Index(), orig.Index())
		}
	}

	account := lapitest.Account(3)
	gotKey := mapKey(t, meta, "Balances", "FreeBalance", account[:])
	wantKey := mapKey(t, want, "Balances", "FreeBalance", account[:])
	if !bytes.Equal(gotKey, wantKey) {
		t.Fatalf("rebuilt key %x, want %x", gotKey, wantKey)
	}

	// Call indices survive the round trip.
	bal, _ := meta.Module("Balances")
	transfer, err := bal.Call("transfer")
	if err != nil {
		t.Fatalf("rebuilt document missing transfer: %v", err)
	}
	if got := transfer.Encode(); got[0] != 1 || got[1] != 0 {
		t.Fatalf("transfer encodes as %x, want module 1 call 0", got)
	}
}

func TestGRPC_EndToEndClientOverWire(t *testing.T) {
	ledger := local.NewLedger(lapitest.TestMetadata())
	addr, stop := startServer(t, lapigrpc.NewServer(ledger))
	defer stop()

	tr := dial(t, addr)
	defer tr.Close()

	// Bootstrap the resolver from the node itself.
	meta, err := tr.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}

	c := lapi.New(meta, tr, lapi.BasicRuntime{})
	signer := &lapitest.MockSigner{Account: lapitest.Account(1)}

	fut, err := c.FreeBalance(context.Background(), lapitest.Account(1))
	if err != nil {
		t.Fatalf("FreeBalance: %v", err)
	}
	balance, err := fut.Await(context.Background())
	if err != nil {
		t.Fatalf("FreeBalance await: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("fresh account balance %s, want 0", balance.String())
	}

	xt, err := c.XtBuilder(signer).Transfer(lapitest.Account(2).Address(), types.NewBalance(1000))
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	hash, err := xt.Submit(context.Background()).Await(context.Background())
	if err != nil {
		t.Fatalf("Submit await: %v", err)
	}
	if hash == (types.Hash{}) {
		t.Fatal("expected a non-zero hash")
	}
	if len(ledger.Extrinsics()) != 1 {
		t.Fatalf("node recorded %d extrinsics", len(ledger.Extrinsics()))
	}
}

func TestDocRoundTrip(t *testing.T) {
	doc := lapigrpc.DocFromMetadata(lapitest.TestMetadata())
	rebuilt := lapigrpc.DocFromMetadata(doc.Build())

	if len(rebuilt.Modules) != len(doc.Modules) {
		t.Fatalf("module count %d, want %d", len(rebuilt.Modules), len(doc.Modules))
	}
	for i, mod := range doc.Modules {
		got := rebuilt.Modules[i]
		if got.Name != mod.Name || got.Index != mod.Index {
			t.Errorf("module %d: %+v, want %+v", i, got, mod)
		}
		if len(got.Storage) != len(mod.Storage) || len(got.Calls) != len(mod.Calls) {
			t.Errorf("module %q lost entries", mod.Name)
		}
	}
}

func mapKey(t *testing.T, meta *metadata.Metadata, module, item string, encoded []byte) types.StorageKey {
	t.Helper()
	mod, err := meta.Module(module)
	if err != nil {
		t.Fatalf("resolve %s: %v", module, err)
	}
	entry, err := mod.Storage(item)
	if err != nil {
		t.Fatalf("resolve %s.%s: %v", module, item, err)
	}
	m, err := entry.Map()
	if err != nil {
		t.Fatalf("%s.%s as map: %v", module, item, err)
	}
	return m.Key(encoded)
}
