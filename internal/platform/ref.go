package platform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RefKind identifies how a window reference names its window.
type RefKind string

const (
	RefHandle RefKind = "handle"
	RefNumber RefKind = "number"
	RefTitle  RefKind = "title"
)

// Ref is an abstract window reference as received from the host shell.
type Ref struct {
	Kind   RefKind
	Value  uint64
	Title  string
	source string
}

func (r Ref) String() string {
	return r.source
}

// Largest values a handle (pointer-sized) and a window number (NSInteger)
// can hold on this build.
const (
	maxHandleValue = uint64(^uintptr(0))
	maxNumberValue = uint64(math.MaxInt)
)

// ParseRef parses "handle:<n>", "number:<n>", "title:<text>" or a bare
// number, which is taken as a raw handle. Numbers accept 0x hex. Titles are
// kept byte for byte.
func ParseRef(s string) (Ref, error) {
	if strings.TrimSpace(s) == "" {
		return Ref{}, fmt.Errorf("window reference is empty")
	}

	kind, value, found := strings.Cut(s, ":")
	if !found {
		kind, value = string(RefHandle), s
	}
	kind = strings.TrimSpace(kind)

	switch RefKind(kind) {
	case RefHandle, RefNumber:
		value = strings.TrimSpace(value)
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return Ref{}, fmt.Errorf("invalid window %s %q: %w", kind, value, err)
		}
		if n == 0 {
			return Ref{}, fmt.Errorf("invalid window %s %q: must be non-zero", kind, value)
		}
		limit := maxHandleValue
		if RefKind(kind) == RefNumber {
			limit = maxNumberValue
		}
		if n > limit {
			return Ref{}, fmt.Errorf("invalid window %s %q: exceeds %#x", kind, value, limit)
		}
		return Ref{Kind: RefKind(kind), Value: n, source: strings.TrimSpace(s)}, nil
	case RefTitle:
		if value == "" {
			return Ref{}, fmt.Errorf("window title is empty")
		}
		return Ref{Kind: RefTitle, Title: value, source: s}, nil
	default:
		return Ref{}, fmt.Errorf("unknown window reference kind %q (want handle, number or title)", kind)
	}
}

// Resolver turns a window reference into a native handle.
type Resolver interface {
	Resolve(ref Ref) (Handle, error)
}

// PassthroughResolver accepts raw handles without validation and rejects
// every other reference kind. It serves targets that cannot look windows up.
type PassthroughResolver struct{}

func (PassthroughResolver) Resolve(ref Ref) (Handle, error) {
	if ref.Kind != RefHandle {
		return Handle{}, fmt.Errorf("window lookup by %s is %w", ref.Kind, ErrUnsupported)
	}
	return NewHandle(uintptr(ref.Value)), nil
}
