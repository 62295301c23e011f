package models

import "github.com/google/uuid"

// RefKind tags how a ClipRef addresses a clip.
type RefKind int

// RefKind constants.
const (
	// RefNative addresses a clip by its store-assigned UUID.
	RefNative RefKind = iota
	// RefExternal addresses a clip by the externally supplied `id` field
	// stored on the document.
	RefExternal
)

// ClipRef is a resolved clip identifier. Callers may address clips either by
// the store-native UUID or by an external string identifier; the two
// addressing schemes are kept apart explicitly so resolution order is a
// policy, not a parse-failure side effect.
type ClipRef struct {
	Native   uuid.UUID
	External string
	Kind     RefKind
}

// ParseClipRef resolves a raw identifier string. Native UUID form wins;
// anything that does not parse as a UUID is treated as an external
// identifier.
func ParseClipRef(raw string) ClipRef {
	if id, err := uuid.Parse(raw); err == nil {
		return ClipRef{Kind: RefNative, Native: id}
	}
	return ClipRef{Kind: RefExternal, External: raw}
}

func (r ClipRef) String() string {
	if r.Kind == RefNative {
		return r.Native.String()
	}
	return r.External
}
