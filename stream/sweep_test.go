package stream_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/strata/persist"
	"github.com/jacentio/strata/stream"
)

// account is the swept entity type: version 2.0 folds the legacy plan field
// into tier.
type account struct {
	persist.Versioned
	Owner string `json:"owner"`
	Tier  string `json:"tier"`
	Plan  string `json:"plan,omitempty"`
}

func (a *account) ClassVersion() string { return "2.0" }

func (a *account) Upgrade() error {
	if a.Plan != "" {
		a.Tier = a.Plan
		a.Plan = ""
	}
	a.SetStoredVersion(a.ClassVersion())
	return nil
}

func accountFactory() persist.Entity { return &account{} }

func newSweepFixture(t *testing.T) (*stream.Handler, *persist.Persister, *persist.FileStore) {
	t.Helper()
	store, err := persist.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	p := persist.New(store)
	h := stream.NewHandler(p, nil)
	h.RegisterPrototype("account", accountFactory)
	return h, p, store
}

func writeStale(t *testing.T, store *persist.FileStore, key string) {
	t.Helper()
	stale := []byte(`{"version":"1.0","state":{"version":"1.0","owner":"ada","plan":"gold"}}`)
	if err := store.Write(context.Background(), key, persist.Blob{Version: "1.0", Data: stale}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func modifyEvent(key, version string) events.DynamoDBEvent {
	image := map[string]events.DynamoDBAttributeValue{
		"pk": events.NewStringAttribute(key),
	}
	if version != "" {
		image["version"] = events.NewStringAttribute(version)
	}
	return events.DynamoDBEvent{
		Records: []events.DynamoDBEventRecord{{
			EventID:   "evt-1",
			EventName: "MODIFY",
			Change:    events.DynamoDBStreamRecord{NewImage: image},
		}},
	}
}

func TestNewHandler(t *testing.T) {
	// Nil logger must not panic.
	h := stream.NewHandler(nil, nil)
	if h == nil {
		t.Fatal("expected non-nil Handler")
	}
}

func TestHandleVersionSweep_RewritesStaleBlob(t *testing.T) {
	h, p, store := newSweepFixture(t)
	ctx := context.Background()

	writeStale(t, store, "account#1")

	if err := h.HandleVersionSweep(ctx, modifyEvent("account#1", "1.0")); err != nil {
		t.Fatalf("HandleVersionSweep failed: %v", err)
	}

	// The rewritten blob is current and migrated.
	blob, err := store.Read(ctx, "account#1")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	var env struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(blob.Data, &env); err != nil {
		t.Fatalf("decode rewritten blob: %v", err)
	}
	if env.Version != "2.0" {
		t.Errorf("expected rewritten version 2.0, got %q", env.Version)
	}

	loaded := &account{}
	if err := p.Load(ctx, "account#1", loaded); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Tier != "gold" || loaded.Plan != "" {
		t.Errorf("expected migrated state, got %+v", loaded)
	}
}

func TestHandleVersionSweep_CurrentVersionUntouched(t *testing.T) {
	h, p, store := newSweepFixture(t)
	ctx := context.Background()

	current := &account{Versioned: persist.NewVersioned("2.0"), Owner: "ada", Tier: "gold"}
	if err := p.Save(ctx, "account#2", current); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	before, _ := store.Read(ctx, "account#2")

	if err := h.HandleVersionSweep(ctx, modifyEvent("account#2", "2.0")); err != nil {
		t.Fatalf("HandleVersionSweep failed: %v", err)
	}

	after, _ := store.Read(ctx, "account#2")
	if string(before.Data) != string(after.Data) {
		t.Error("expected current blob to be left untouched")
	}
}

func TestHandleVersionSweep_MissingVersionTreatedAsLegacy(t *testing.T) {
	h, _, store := newSweepFixture(t)
	ctx := context.Background()

	legacy := []byte(`{"state":{"owner":"ada","plan":"silver"}}`)
	store.Write(ctx, "account#3", persist.Blob{Data: legacy})

	if err := h.HandleVersionSweep(ctx, modifyEvent("account#3", "")); err != nil {
		t.Fatalf("HandleVersionSweep failed: %v", err)
	}

	blob, _ := store.Read(ctx, "account#3")
	var env struct {
		Version string `json:"version"`
	}
	json.Unmarshal(blob.Data, &env)
	if env.Version != "2.0" {
		t.Errorf("expected legacy blob rewritten to 2.0, got %q", env.Version)
	}
}

func TestHandleVersionSweep_UnregisteredPrefixSkipped(t *testing.T) {
	h, _, store := newSweepFixture(t)
	ctx := context.Background()

	writeStale(t, store, "unknown#1")
	before, _ := store.Read(ctx, "unknown#1")

	if err := h.HandleVersionSweep(ctx, modifyEvent("unknown#1", "1.0")); err != nil {
		t.Fatalf("HandleVersionSweep failed: %v", err)
	}

	after, _ := store.Read(ctx, "unknown#1")
	if string(before.Data) != string(after.Data) {
		t.Error("expected unregistered key to be skipped")
	}
}

func TestHandleVersionSweep_RemoveEventsIgnored(t *testing.T) {
	h, _, _ := newSweepFixture(t)

	event := events.DynamoDBEvent{
		Records: []events.DynamoDBEventRecord{{
			EventID:   "evt-2",
			EventName: "REMOVE",
			Change: events.DynamoDBStreamRecord{
				NewImage: map[string]events.DynamoDBAttributeValue{
					"pk": events.NewStringAttribute("account#4"),
				},
			},
		}},
	}
	if err := h.HandleVersionSweep(context.Background(), event); err != nil {
		t.Errorf("expected REMOVE to be ignored, got %v", err)
	}
}

func TestHandleVersionSweep_LoadFailurePropagates(t *testing.T) {
	h, _, store := newSweepFixture(t)
	ctx := context.Background()

	store.Write(ctx, "account#5", persist.Blob{Data: []byte("not a blob")})

	if err := h.HandleVersionSweep(ctx, modifyEvent("account#5", "1.0")); err == nil {
		t.Error("expected decode failure to propagate for retry")
	}
}

func TestHandleVersionSweep_EmptyImageSkipped(t *testing.T) {
	h, _, _ := newSweepFixture(t)

	event := events.DynamoDBEvent{
		Records: []events.DynamoDBEventRecord{{
			EventID:   "evt-3",
			EventName: "MODIFY",
			Change:    events.DynamoDBStreamRecord{},
		}},
	}
	if err := h.HandleVersionSweep(context.Background(), event); err != nil {
		t.Errorf("expected record without a key to be skipped, got %v", err)
	}
}
