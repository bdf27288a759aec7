package storage

import (
	"context"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/world"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines the interface for world and session persistence.
// Worlds and their adventure sessions are keyed by world name; saving
// under an existing name overwrites the previous record.
type Storage interface {
	HealthChecker
	Closer

	// SaveWorld stores a world under its name
	SaveWorld(ctx context.Context, w *world.World) error

	// LoadWorld retrieves a world by name
	// Returns nil if the world doesn't exist
	LoadWorld(ctx context.Context, name string) (*world.World, error)

	// DeleteWorld removes a world and its session by name
	DeleteWorld(ctx context.Context, name string) error

	// ListWorlds returns the names of all stored worlds
	ListWorlds(ctx context.Context) ([]string, error)

	// SaveSession stores an adventure session under its world name
	SaveSession(ctx context.Context, sess *adventure.Session) error

	// LoadSession retrieves a session by world name
	// Returns nil if the session doesn't exist
	LoadSession(ctx context.Context, worldName string) (*adventure.Session, error)

	// DeleteSession removes a session by world name
	DeleteSession(ctx context.Context, worldName string) error
}
