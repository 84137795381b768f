package persist

import "github.com/google/uuid"

// LegacyVersion is assigned to loaded blobs that carry no version at all.
const LegacyVersion = "0.0"

// Entity is the contract for versioned, persistable objects. ClassVersion
// returns the version string the current shape of the type is declared at.
type Entity interface {
	ClassVersion() string
}

// Upgrader is implemented by entities that can migrate in-memory state when
// loaded from a blob whose stored version differs from the current
// ClassVersion. The hook runs exactly once per load, before the object is
// returned, and is expected to mutate the receiver to the current shape and,
// conventionally, to overwrite the stored version. Entities that do not
// implement Upgrader get the no-op base behavior.
type Upgrader interface {
	Upgrade() error
}

// Versioned carries the version an entity was constructed or loaded with.
// Embed it in an entity struct and initialize it with NewVersioned.
type Versioned struct {
	Version string `json:"version"`
}

// NewVersioned freezes the given version at construction time.
func NewVersioned(version string) Versioned {
	return Versioned{Version: version}
}

// StoredVersion returns the version the entity currently carries.
func (v *Versioned) StoredVersion() string { return v.Version }

// SetStoredVersion overwrites the carried version. Load uses it to stamp the
// version found in the blob; Upgrade implementations use it to mark the
// entity current.
func (v *Versioned) SetStoredVersion(version string) { v.Version = version }

// VersionCarrier is satisfied by embedding Versioned.
type VersionCarrier interface {
	StoredVersion() string
	SetStoredVersion(string)
}

// NewKey returns a type-qualified blob key, e.g. "host#5f4d…".
func NewKey(prefix string) string {
	return prefix + "#" + uuid.NewString()
}
