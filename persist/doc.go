// Package persist provides versioned save and load for serializable entities
// with forward-compatible schema evolution.
//
// Every persisted blob carries the version string the owning type declared
// when it was saved. On load, a blob whose version differs from the current
// [Entity.ClassVersion] has its [Upgrader] hook run exactly once before the
// object is returned, so long-lived state written by old code keeps loading
// under new code.
//
// # Entities
//
// An entity declares its current version and, usually, embeds [Versioned] to
// carry the stored one:
//
//	type Host struct {
//	    persist.Versioned
//	    Name string `json:"name"`
//	    Addr string `json:"addr"`
//	}
//
//	func (h *Host) ClassVersion() string { return "2.0" }
//
//	func (h *Host) Upgrade() error {
//	    // migrate in-memory state written by older versions
//	    h.SetStoredVersion(h.ClassVersion())
//	    return nil
//	}
//
// A blob saved before versions were recorded loads as [LegacyVersion].
//
// # Stores
//
// Blobs are written through the [Store] interface. [FileStore] keeps one
// file per key with atomic replace-on-write; [DynamoStore] keeps one item
// per key and surfaces the blob version as an item attribute for stream
// consumers. The serialized layout is owned by the configured [Codec]
// (JSON by default); only the logical content - version plus state - is
// part of the contract.
//
//	store, _ := persist.NewFileStore(dir)
//	p := persist.New(store)
//
//	key := persist.NewKey("host")
//	_ = p.Save(ctx, key, host)
//	_ = p.Load(ctx, key, &loaded)
package persist
