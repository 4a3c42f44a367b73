package metadata

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a resolution failure.
type ErrorKind uint8

const (
	// ModuleNotFound: the metadata document has no module by that name.
	ModuleNotFound ErrorKind = iota
	// StorageNotFound: the module has no storage item by that name.
	StorageNotFound
	// CallNotFound: the module has no call by that name.
	CallNotFound
	// NotAMap: the storage item exists but is a plain entry, not a map.
	NotAMap
)

func (k ErrorKind) String() string {
	switch k {
	case ModuleNotFound:
		return "module not found"
	case StorageNotFound:
		return "storage item not found"
	case CallNotFound:
		return "call not found"
	case NotAMap:
		return "storage item is not a map"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Error reports a failed lookup against the metadata document. It
// means the client's view of the runtime schema disagrees with the
// document. Never a transient condition; callers must not retry.
type Error struct {
	Kind   ErrorKind
	Module string
	// Item is the storage or call name; empty for ModuleNotFound.
	Item string
}

func (e *Error) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("metadata: %s: %q", e.Kind, e.Module)
	}
	return fmt.Sprintf("metadata: %s: %q in module %q", e.Kind, e.Item, e.Module)
}

// AsError checks whether err is (or wraps) a metadata Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
