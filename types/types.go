// Package types defines the semantic types a concrete ledger runtime
// binds: account identifiers, balances, hashes, nonces and the opaque
// byte buffers produced by the encoding layer.
//
// Wire structs carried over gRPC live in the transport package; these
// are the types the resolver, codec and builder agree on.
package types

import (
	"encoding/hex"

	"github.com/holiman/uint256"
)

// Hash is a 32-byte cryptographic hash (block hash, extrinsic hash).
type Hash [32]byte

// Hex returns the 0x-prefixed hexadecimal form of the hash.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// AccountID is the 32-byte account identifier of the runtime.
type AccountID [32]byte

// Address is the lookup-source type used to reference an account in a
// call argument. This runtime uses the identity lookup: an Address is
// the AccountID itself. Runtimes with an index module may widen this.
type Address AccountID

// Address converts an AccountID through the identity lookup.
func (a AccountID) Address() Address {
	return Address(a)
}

// Index is the account nonce type: the number of prior extrinsics
// submitted by an account.
type Index uint32

// BlockNumber is the chain height type.
type BlockNumber uint64

// Balance is an account balance. The balance domain is 128 bits; it is
// carried as a uint256.Int of which only the low 128 bits may be set.
type Balance = uint256.Int

// NewBalance returns a Balance holding v.
func NewBalance(v uint64) Balance {
	return *uint256.NewInt(v)
}

// BalanceFromBlockNumber converts a block number into a balance.
// The conversion is part of the runtime contract: modules price
// time-dependent quantities (locks, vesting) in balance units.
func BalanceFromBlockNumber(n BlockNumber) Balance {
	return *uint256.NewInt(uint64(n))
}

// StorageKey is a derived storage location. Opaque and immutable;
// equality is byte-wise.
type StorageKey []byte

// EncodedCall is an encoded call payload: module index, call index,
// then the encoded arguments. Opaque and immutable; produced once and
// consumed once by the extrinsic builder.
type EncodedCall []byte

// Signature is an opaque signature over an extrinsic payload. The
// scheme is the signer's concern; the builder only frames it.
type Signature []byte
