// Package stream provides DynamoDB Streams handlers for version maintenance.
package stream

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/strata/persist"
)

// EntityFactory produces a fresh, zero-valued entity for one key prefix.
type EntityFactory func() persist.Entity

// Handler watches a blob table's stream and eagerly rewrites items whose
// stored version has fallen behind the current ClassVersion. Loading runs
// the entity's upgrade hook; saving writes the item back current. Without
// this sweep, stale blobs still upgrade lazily on their next load - the
// handler just brings the table forward ahead of time.
type Handler struct {
	persister *persist.Persister
	factories map[string]EntityFactory
	logger    *slog.Logger
}

// NewHandler creates a new stream handler over the persister that owns the
// streamed table.
func NewHandler(p *persist.Persister, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		persister: p,
		factories: make(map[string]EntityFactory),
		logger:    logger,
	}
}

// RegisterPrototype maps a key prefix (the part before "#") to the factory
// for its entity type. Keys with unregistered prefixes are skipped.
func (h *Handler) RegisterPrototype(prefix string, factory EntityFactory) {
	h.factories[prefix] = factory
}

// HandleVersionSweep processes DynamoDB stream events for the blob table.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleVersionSweep(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord rewrites a single stale item, if any.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != "INSERT" && record.EventName != "MODIFY" {
		return nil
	}

	key := getStringAttr(record.Change.NewImage, "pk")
	if key == "" {
		return nil
	}
	stored := getStringAttr(record.Change.NewImage, "version")
	if stored == "" {
		stored = persist.LegacyVersion
	}

	factory, ok := h.factories[keyPrefix(key)]
	if !ok {
		h.logger.Debug("skipping unregistered key", "key", key)
		return nil
	}
	if stored == factory().ClassVersion() {
		return nil
	}

	h.logger.Info("rewriting stale blob",
		"key", key,
		"stored", stored,
	)

	entity := factory()
	if err := h.persister.Load(ctx, key, entity); err != nil {
		return err
	}
	// The rewrite emits one more MODIFY event; its versions match, so the
	// sweep converges.
	return h.persister.Save(ctx, key, entity)
}

// keyPrefix returns the type-qualifying part of a blob key.
func keyPrefix(key string) string {
	prefix, _, _ := strings.Cut(key, "#")
	return prefix
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}
