package ports

import (
	"context"

	"github.com/aretw0/previewkit/pkg/domain"
)

// PreviewStore keeps the most recent preview request per preview target.
type PreviewStore interface {
	// Save stores req under req.PreviewFqName, replacing any earlier request.
	Save(ctx context.Context, req *domain.PreviewRequest) error

	// Load retrieves the request for a target.
	// Returns domain.ErrPreviewNotFound if none was stored.
	Load(ctx context.Context, target string) (*domain.PreviewRequest, error)

	// Delete removes the request for a target. Deleting a missing target is not an error.
	Delete(ctx context.Context, target string) error

	// List returns the targets that currently have a request.
	List(ctx context.Context) ([]string, error)
}
