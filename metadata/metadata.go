// Package metadata resolves module, storage and call names against a
// runtime-supplied metadata document and derives storage keys.
//
// The document is immutable after construction and safe for
// unsynchronized concurrent reads. All lookups are pure, synchronous
// and case-sensitive; a missing name is a resolvable *Error, never a
// panic. Parsing the node's raw metadata bytes into a document is the
// transport layer's concern.
package metadata

import (
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/blockberries/lapi/types"
)

// Metadata is the runtime's self-description: a read-only mapping from
// module name to module descriptor.
type Metadata struct {
	modules map[string]*Module
}

// New builds a metadata document from module descriptors.
// Panics on duplicate module names: a document that disagrees with
// itself violates the construction invariant.
func New(modules ...*Module) *Metadata {
	m := &Metadata{modules: make(map[string]*Module, len(modules))}
	for _, mod := range modules {
		if _, dup := m.modules[mod.name]; dup {
			panic(fmt.Sprintf("metadata: duplicate module %q", mod.name))
		}
		m.modules[mod.name] = mod
	}
	return m
}

// Module resolves a module by exact name.
func (m *Metadata) Module(name string) (*Module, error) {
	mod, ok := m.modules[name]
	if !ok {
		return nil, &Error{Kind: ModuleNotFound, Module: name}
	}
	return mod, nil
}

// Modules returns all module descriptors ordered by module index.
func (m *Metadata) Modules() []*Module {
	out := make([]*Module, 0, len(m.modules))
	for _, mod := range m.modules {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

// Module describes one runtime module: its storage items and calls.
// Never mutated after the document is built.
type Module struct {
	name    string
	index   uint8
	storage map[string]*StorageEntry
	calls   map[string]*CallEntry
	// callOrder preserves declaration order; it carries the call
	// indices the encoder emits.
	callOrder []*CallEntry
}

// NewModule returns an empty module descriptor. The index is the
// module's position in the runtime's call dispatch table.
func NewModule(name string, index uint8) *Module {
	return &Module{
		name:    name,
		index:   index,
		storage: make(map[string]*StorageEntry),
		calls:   make(map[string]*CallEntry),
	}
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Index returns the module's dispatch index.
func (m *Module) Index() uint8 { return m.index }

// WithStoragePlain declares a plain (non-map) storage item with its
// default encoded value. Returns the module for chaining.
func (m *Module) WithStoragePlain(name string, defaultValue []byte) *Module {
	m.storage[name] = &StorageEntry{
		module: m.name, name: name, isMap: false,
		def: append([]byte(nil), defaultValue...),
	}
	return m
}

// WithStorageMap declares a map storage item (keyed per account or
// per arbitrary encoded key) with its default encoded value.
func (m *Module) WithStorageMap(name string, defaultValue []byte) *Module {
	m.storage[name] = &StorageEntry{
		module: m.name, name: name, isMap: true,
		def: append([]byte(nil), defaultValue...),
	}
	return m
}

// WithCall declares a callable entry point. Call indices are assigned
// in declaration order.
func (m *Module) WithCall(name string) *Module {
	c := &CallEntry{
		module: m.name, name: name,
		moduleIndex: m.index, callIndex: uint8(len(m.callOrder)),
	}
	m.calls[name] = c
	m.callOrder = append(m.callOrder, c)
	return m
}

// Storage resolves a storage item by exact name.
func (m *Module) Storage(name string) (*StorageEntry, error) {
	e, ok := m.storage[name]
	if !ok {
		return nil, &Error{Kind: StorageNotFound, Module: m.name, Item: name}
	}
	return e, nil
}

// Call resolves a callable entry point by exact name.
func (m *Module) Call(name string) (*CallEntry, error) {
	c, ok := m.calls[name]
	if !ok {
		return nil, &Error{Kind: CallNotFound, Module: m.name, Item: name}
	}
	return c, nil
}

// StorageEntries returns the module's storage items sorted by name.
func (m *Module) StorageEntries() []*StorageEntry {
	out := make([]*StorageEntry, 0, len(m.storage))
	for _, e := range m.storage {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Calls returns the module's calls in dispatch-index order.
func (m *Module) Calls() []*CallEntry {
	return append([]*CallEntry(nil), m.callOrder...)
}

// StorageEntry describes one storage item: the inputs to key
// derivation plus the declared default value.
type StorageEntry struct {
	module string
	name   string
	isMap  bool
	def    []byte
}

// Name returns the storage item name.
func (e *StorageEntry) Name() string { return e.name }

// IsMap reports whether the item is keyed.
func (e *StorageEntry) IsMap() bool { return e.isMap }

// Default returns a copy of the declared default encoded value, used
// when the node has no entry for a key. Absent and
// present-but-default are indistinguishable to readers.
func (e *StorageEntry) Default() []byte {
	return append([]byte(nil), e.def...)
}

// Key derives the storage key of a plain entry:
// blake2b-256(module || item).
func (e *StorageEntry) Key() types.StorageKey {
	return deriveKey(e.module, e.name, nil)
}

// Map views the entry as a storage map. Fails with a NotAMap error if
// the item is a plain entry.
func (e *StorageEntry) Map() (*StorageMap, error) {
	if !e.isMap {
		return nil, &Error{Kind: NotAMap, Module: e.module, Item: e.name}
	}
	return &StorageMap{entry: e}, nil
}

// StorageMap is a keyed view of a map storage entry. Key derivation is
// pure: identical inputs always produce identical keys.
type StorageMap struct {
	entry *StorageEntry
}

// Key derives the storage key for one map entry:
// blake2b-256(module || item || encodedKey).
func (s *StorageMap) Key(encodedKey []byte) types.StorageKey {
	return deriveKey(s.entry.module, s.entry.name, encodedKey)
}

// Default returns a copy of the declared default encoded value.
func (s *StorageMap) Default() []byte {
	return s.entry.Default()
}

func deriveKey(module, item string, encodedKey []byte) types.StorageKey {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(module))
	h.Write([]byte(item))
	h.Write(encodedKey)
	return types.StorageKey(h.Sum(nil))
}

// CallEntry identifies one callable entry point by its dispatch
// indices.
type CallEntry struct {
	module      string
	name        string
	moduleIndex uint8
	callIndex   uint8
}

// Name returns the call name.
func (c *CallEntry) Name() string { return c.name }

// Encode produces the encoded call: module index, call index, then
// the already-encoded arguments in order. Encoding is total; all
// failure happened at resolution time.
func (c *CallEntry) Encode(args ...[]byte) types.EncodedCall {
	n := 2
	for _, a := range args {
		n += len(a)
	}
	out := make([]byte, 0, n)
	out = append(out, c.moduleIndex, c.callIndex)
	for _, a := range args {
		out = append(out, a...)
	}
	return types.EncodedCall(out)
}
