// Package vectordb provides vector database implementations for ragtext
package vectordb

import (
	"context"
	"sync"
	"time"

	"github.com/ragtext/ragtext/pkg/types"
)

// ConnectionStatus represents the state of the database connection
type ConnectionStatus string

const (
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
	ConnectionStatusConnecting   ConnectionStatus = "connecting"
	ConnectionStatusConnected    ConnectionStatus = "connected"
	ConnectionStatusError        ConnectionStatus = "error"
)

// SearchQuery carries the vectors and limits for a similarity search.
// Dense and Sparse may both be set; the store fuses the two result
// lists when they are.
type SearchQuery struct {
	Dense  types.EmbeddingVector
	Sparse types.SparseVector
	Limit  int
}

// VectorStore is the interface all vector database backends implement
type VectorStore interface {
	// Connect establishes the connection to the backend
	Connect(ctx context.Context) error

	// Disconnect closes the connection
	Disconnect(ctx context.Context) error

	// HealthCheck verifies the backend is reachable
	HealthCheck(ctx context.Context) error

	// EnsureCollection creates the collection if it does not exist
	EnsureCollection(ctx context.Context, name string, denseDimension int) error

	// CollectionExists checks whether a collection exists
	CollectionExists(ctx context.Context, name string) (bool, error)

	// Upsert inserts or replaces items in the collection
	Upsert(ctx context.Context, collection string, items []*Item) error

	// Search performs a similarity search over the collection
	Search(ctx context.Context, collection string, query SearchQuery) ([]types.VectorSearchResult, error)

	// Count returns the number of points in the collection
	Count(ctx context.Context, collection string) (int64, error)
}

// BaseVectorStore provides connection state tracking shared by backends
type BaseVectorStore struct {
	status          ConnectionStatus
	lastHealthCheck time.Time
	mu              sync.RWMutex
}

// NewBaseVectorStore creates a new base vector store
func NewBaseVectorStore() *BaseVectorStore {
	return &BaseVectorStore{status: ConnectionStatusDisconnected}
}

// SetConnectionStatus updates the connection status
func (b *BaseVectorStore) SetConnectionStatus(status ConnectionStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

// GetConnectionStatus returns the current connection status
func (b *BaseVectorStore) GetConnectionStatus() ConnectionStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// IsConnected reports whether the store is connected
func (b *BaseVectorStore) IsConnected() bool {
	return b.GetConnectionStatus() == ConnectionStatusConnected
}

// SetLastHealthCheck records the time of the last successful health check
func (b *BaseVectorStore) SetLastHealthCheck(t time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastHealthCheck = t
}

// GetLastHealthCheck returns the time of the last successful health check
func (b *BaseVectorStore) GetLastHealthCheck() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastHealthCheck
}
