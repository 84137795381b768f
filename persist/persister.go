package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// envelope is the logical content of every persisted blob: the version the
// object was saved at plus the encoded subclass state.
type envelope struct {
	Version string          `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Persister saves and loads versioned entities through a Store.
type Persister struct {
	store  Store
	codec  Codec
	logger *slog.Logger
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithCodec overrides the default JSON codec.
func WithCodec(c Codec) PersisterOption {
	return func(p *Persister) { p.codec = c }
}

// WithLogger sets the logger for save/load diagnostics.
func WithLogger(logger *slog.Logger) PersisterOption {
	return func(p *Persister) { p.logger = logger }
}

// New creates a Persister over the given store.
func New(store Store, opts ...PersisterOption) *Persister {
	p := &Persister{
		store: store,
		codec: JSONCodec{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Save serializes the entity, wraps it in a version envelope tagged with the
// entity's ClassVersion, and writes it under key. No version check occurs on
// save; write failures propagate to the caller.
func (p *Persister) Save(ctx context.Context, key string, entity Entity) error {
	if entity == nil {
		return ErrNilEntity
	}

	state, err := p.codec.Marshal(entity)
	if err != nil {
		return fmt.Errorf("strata: encode state for %q: %w", key, err)
	}
	data, err := p.codec.Marshal(envelope{
		Version: entity.ClassVersion(),
		State:   state,
	})
	if err != nil {
		return fmt.Errorf("strata: encode envelope for %q: %w", key, err)
	}

	if err := p.store.Write(ctx, key, Blob{Version: entity.ClassVersion(), Data: data}); err != nil {
		return err
	}
	p.logger.Debug("saved entity", "key", key, "version", entity.ClassVersion())
	return nil
}

// Load reads the blob under key and decodes it into the entity. A blob with
// no recorded version is treated as version LegacyVersion. When the stored
// version differs from the entity's current ClassVersion, the entity's
// Upgrade hook runs exactly once before Load returns. A failed read or
// decode never yields a usable object.
func (p *Persister) Load(ctx context.Context, key string, into Entity) error {
	if into == nil {
		return ErrNilEntity
	}

	blob, err := p.store.Read(ctx, key)
	if err != nil {
		return err
	}

	var env envelope
	if err := p.codec.Unmarshal(blob.Data, &env); err != nil {
		return fmt.Errorf("strata: decode envelope for %q: %w", key, err)
	}
	if len(env.State) > 0 {
		if err := p.codec.Unmarshal(env.State, into); err != nil {
			return fmt.Errorf("strata: decode state for %q: %w", key, err)
		}
	}

	stored := env.Version
	if stored == "" {
		stored = LegacyVersion
	}
	if carrier, ok := into.(VersionCarrier); ok {
		carrier.SetStoredVersion(stored)
	}

	if stored != into.ClassVersion() {
		p.logger.Debug("loaded stale entity",
			"key", key,
			"stored", stored,
			"current", into.ClassVersion(),
		)
		if upgrader, ok := into.(Upgrader); ok {
			if err := upgrader.Upgrade(); err != nil {
				return fmt.Errorf("strata: upgrade %q from %s: %w", key, stored, err)
			}
		}
	}
	return nil
}
