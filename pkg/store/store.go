// Package store provides persistence for saved org charts.
//
// This package defines an interface for chart storage with implementations
// for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// Charts are stored as records carrying a generated ID, the chart payload
// and timestamps. The Store interface supports:
//   - Put/Get/Delete operations
//   - Listing records newest-first
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := store.NewMemoryStore()
//
//	// Production
//	store, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Save a chart:
//
//	rec := store.NewRecord(chart)
//	if err := store.Put(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/matzehuels/orgchart/pkg/chart"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Record is a saved chart with identity and timestamps.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Chart     chart.Chart `json:"chart" bson:"chart"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// NewRecord creates a record for a chart with a fresh UUID and timestamps.
func NewRecord(c chart.Chart) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Chart:     c,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for chart storage backends.
type Store interface {
	// Put saves a record, overwriting any record with the same ID.
	// UpdatedAt is refreshed on write.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records sorted by creation time, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record. Deleting a missing record returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
