// Package store persists rounds so they can be listed, replayed and
// exported later.
//
// Backends:
//   - file: one JSON file per round, for the CLI
//   - redis: rounds as JSON values plus a sorted index, for shared servers
//   - mongo: one document per round
//   - memory: a map, for tests and throwaway servers
//   - none: stores nothing, for --no-save
//
// Every backend reports its operations through
// [observability.StoreHooks].
//
// # Usage
//
//	s, err := store.Open(ctx, cfg.Store)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Put(ctx, r); err != nil {
//	    return err
//	}
//	r, err = s.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // unknown round
//	}
package store

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ghostleg/pkg/config"
	gerrors "github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/observability"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// ErrNotFound is returned when a round does not exist. Backends wrap it in
// a ROUND_NOT_FOUND error.
var ErrNotFound = errors.New("round not found")

// Store is the interface for round storage backends.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the round with the given ID, or an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, id string) (*round.Round, error)

	// Put stores r, replacing any round with the same ID.
	Put(ctx context.Context, r *round.Round) error

	// List returns up to limit rounds, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a round, or returns an error wrapping ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend connections.
	Close() error
}

// Summary is the short form of a round shown by listings.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Names     []string  `json:"names" bson:"names"`
	Seed      uint64    `json:"seed" bson:"seed"`
}

// Lanes returns the number of players.
func (s Summary) Lanes() int { return len(s.Names) }

// Summarize returns the listing entry of r.
func Summarize(r *round.Round) Summary {
	return Summary{ID: r.ID, CreatedAt: r.CreatedAt, Names: r.Names, Seed: r.Seed}
}

// Open connects to the backend selected by cfg.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Dir)
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendNone:
		return NewNullStore(), nil
	default:
		return nil, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
}

// =============================================================================
// Shared helpers
// =============================================================================

// checkID rejects IDs that New could not have produced. The file backend
// uses IDs as file names, so this also keeps paths inside the store.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "invalid round id %q", id)
	}
	return nil
}

// loaded checks a round read back from a backend. Stored data may have been
// edited by hand, so it gets the same checks as an imported JSON file.
func loaded(id string, r *round.Round) (*round.Round, error) {
	if r.ID != id {
		return nil, gerrors.New(gerrors.ErrCodeInvalidRound, "invalid round: stored under %s but has id %q", id, r.ID)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func notFound(id string) error {
	return gerrors.Wrap(gerrors.ErrCodeRoundNotFound, ErrNotFound, "round %s", id)
}

func storeErr(err error, format string, args ...any) error {
	return gerrors.Wrap(gerrors.ErrCodeStore, err, format, args...)
}

func observeSave(ctx context.Context, backend, id string, err error) {
	observability.Store().OnSave(ctx, backend, id, err)
}

func observeLoad(ctx context.Context, backend, id string, err error) {
	hit := err == nil
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	observability.Store().OnLoad(ctx, backend, id, hit, err)
}

func observeDelete(ctx context.Context, backend, id string, err error) {
	observability.Store().OnDelete(ctx, backend, id, err)
}

// newestFirst sorts summaries by creation time, newest first, and applies
// limit.
func newestFirst(out []Summary, limit int) []Summary {
	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
