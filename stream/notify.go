// Package stream provides a DynamoDB Streams handler that surfaces
// record expiry to the application.
//
// When the dynamo backend writes records with a TTL, DynamoDB removes
// them asynchronously and emits REMOVE events attributed to its TTL
// service. The Notifier watches those events, parses the derived key
// back into entity type name and primary-key text, and dispatches to
// the callback registered for that type.
package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/lattice/record"
)

// ttlPrincipal identifies REMOVE events produced by DynamoDB's TTL
// service, as opposed to application deletes.
const ttlPrincipal = "dynamodb.amazonaws.com"

// Callback handles the expiry of one record. typeName and pk are the
// parsed halves of the derived key.
type Callback func(ctx context.Context, typeName, pk string) error

// Registry maps entity type names to expiry callbacks.
// Populate it during initialization; it is not safe to mutate while a
// Notifier is handling events.
type Registry struct {
	byType map[string]Callback
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string]Callback)}
}

// Register sets the callback for an entity type name, replacing any
// previous one.
func (r *Registry) Register(typeName string, cb Callback) {
	r.byType[typeName] = cb
}

// Lookup returns the callback registered for typeName.
func (r *Registry) Lookup(typeName string) (Callback, bool) {
	cb, ok := r.byType[typeName]
	return cb, ok
}

// Notifier processes DynamoDB stream events for record expiry.
type Notifier struct {
	registry *Registry
	logger   *slog.Logger
}

// NewNotifier creates a stream notifier.
func NewNotifier(registry *Registry, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		registry: registry,
		logger:   logger,
	}
}

// HandleExpiry processes a batch of DynamoDB stream events, dispatching
// TTL-driven removals to registered callbacks. This function is designed
// to be used as an AWS Lambda handler.
func (n *Notifier) HandleExpiry(ctx context.Context, event events.DynamoDBEvent) error {
	for _, rec := range event.Records {
		if err := n.processRecord(ctx, rec); err != nil {
			n.logger.Error("failed to process record",
				"eventID", rec.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (n *Notifier) processRecord(ctx context.Context, rec events.DynamoDBEventRecord) error {
	// Only TTL-service removals count as expiry.
	if rec.EventName != "REMOVE" {
		return nil
	}
	if rec.UserIdentity == nil || rec.UserIdentity.PrincipalID != ttlPrincipal {
		return nil
	}

	key := getStringAttr(rec.Change.Keys, "pk")
	typeName, pk, ok := record.SplitKey(key)
	if !ok {
		n.logger.Warn("skipping record with malformed key", "key", key)
		return nil
	}

	cb, ok := n.registry.Lookup(typeName)
	if !ok {
		n.logger.Info("no expiry callback registered",
			"type", typeName,
			"key", key,
		)
		return nil
	}

	if err := cb(ctx, typeName, pk); err != nil {
		return fmt.Errorf("notify expiry of %s: %w", key, err)
	}

	n.logger.Info("record expiry dispatched",
		"type", typeName,
		"key", key,
	)
	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}
