package lapigrpc

import (
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// Wire structs for the StateService RPC boundary. Domain types cross
// the wire directly via cramberry tags; no protobuf generation.

// FetchRequest asks for the raw value at a storage key.
type FetchRequest struct {
	Key []byte `cramberry:"1"`
}

// FetchResponse carries the value, or Found=false when the node has
// no entry for the key.
type FetchResponse struct {
	Value []byte `cramberry:"1"`
	Found bool   `cramberry:"2"`
}

// SubmitRequest carries a finished extrinsic.
type SubmitRequest struct {
	Extrinsic []byte `cramberry:"1"`
}

// SubmitResponse carries the resulting block/transaction hash.
type SubmitResponse struct {
	Hash types.Hash `cramberry:"1"`
}

// MetadataRequest is the (empty) request for the metadata document.
type MetadataRequest struct{}

// MetadataDoc is the metadata document in wire form.
type MetadataDoc struct {
	Modules []ModuleDoc `cramberry:"1"`
}

// ModuleDoc is one module descriptor in wire form. Call order carries
// the dispatch indices.
type ModuleDoc struct {
	Name    string       `cramberry:"1"`
	Index   uint32       `cramberry:"2"`
	Storage []StorageDoc `cramberry:"3"`
	Calls   []CallDoc    `cramberry:"4"`
}

// StorageDoc is one storage item descriptor in wire form.
type StorageDoc struct {
	Name    string `cramberry:"1"`
	IsMap   bool   `cramberry:"2"`
	Default []byte `cramberry:"3"`
}

// CallDoc is one callable entry point in wire form.
type CallDoc struct {
	Name string `cramberry:"1"`
}

// DocFromMetadata flattens a metadata document into its wire form.
func DocFromMetadata(m *metadata.Metadata) MetadataDoc {
	var doc MetadataDoc
	for _, mod := range m.Modules() {
		md := ModuleDoc{Name: mod.Name(), Index: uint32(mod.Index())}
		for _, e := range mod.StorageEntries() {
			md.Storage = append(md.Storage, StorageDoc{
				Name:    e.Name(),
				IsMap:   e.IsMap(),
				Default: e.Default(),
			})
		}
		for _, c := range mod.Calls() {
			md.Calls = append(md.Calls, CallDoc{Name: c.Name()})
		}
		doc.Modules = append(doc.Modules, md)
	}
	return doc
}

// Build reconstructs a queryable metadata document from wire form.
func (doc MetadataDoc) Build() *metadata.Metadata {
	mods := make([]*metadata.Module, 0, len(doc.Modules))
	for _, md := range doc.Modules {
		mod := metadata.NewModule(md.Name, uint8(md.Index))
		for _, s := range md.Storage {
			if s.IsMap {
				mod.WithStorageMap(s.Name, s.Default)
			} else {
				mod.WithStoragePlain(s.Name, s.Default)
			}
		}
		for _, c := range md.Calls {
			mod.WithCall(c.Name)
		}
		mods = append(mods, mod)
	}
	return metadata.New(mods...)
}
