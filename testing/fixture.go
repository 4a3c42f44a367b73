package lapitest

import (
	"golang.org/x/crypto/blake2b"

	"github.com/blockberries/lapi/codec"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// TestMetadata returns the fixture document used across the test
// suite: a System module with the AccountNonce map and set_code call,
// and a Balances module with the FreeBalance map and transfer call.
// Defaults are zero nonce and zero balance.
func TestMetadata() *metadata.Metadata {
	return metadata.New(
		metadata.NewModule("System", 0).
			WithStorageMap("AccountNonce", codec.EncodeIndex(0)).
			WithStoragePlain("Number", nil).
			WithCall("set_code"),
		metadata.NewModule("Balances", 1).
			WithStorageMap("FreeBalance", codec.EncodeBalance(types.NewBalance(0))).
			WithCall("transfer").
			WithCall("set_balance"),
	)
}

// Account returns a deterministic test account whose first byte is b.
func Account(b byte) types.AccountID {
	var a types.AccountID
	a[0] = b
	return a
}

// pseudoSign derives a deterministic 64-byte signature from the
// signing account and payload.
func pseudoSign(account types.AccountID, payload []byte) types.Signature {
	h, _ := blake2b.New512(nil)
	h.Write(account[:])
	h.Write(payload)
	return types.Signature(h.Sum(nil))
}

// SignatureFor returns the signature MockSigner produces for the
// given payload, for byte-for-byte framing assertions.
func SignatureFor(account types.AccountID, payload []byte) types.Signature {
	return pseudoSign(account, payload)
}
