package store

import (
	"context"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/metadata"
)

// Store defines the interface for study metadata storage
type Store interface {
	// Study operations
	SaveStudy(ctx context.Context, doc *metadata.Document) (*Study, error)
	GetStudy(ctx context.Context, name string) (*Study, error)
	ListStudies(ctx context.Context) ([]*Study, error)
	DeleteStudy(ctx context.Context, name string) error

	// View metadata
	GetViewMetadata(ctx context.Context, study string, view axis.ViewID) (metadata.View, error)

	// Lifecycle
	Close() error
}
