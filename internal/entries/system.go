package entries

import (
	"context"

	"github.com/google/uuid"

	"reverie/pkg/pagination"
)

// System defines the public contract for entry domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Create(ctx context.Context, cmd CreateCommand) (*Entry, error)
	Summarize(ctx context.Context, id uuid.UUID) (*Entry, error)
	Answer(ctx context.Context, id uuid.UUID, questionID int, answer string) (*Entry, error)
	Dismiss(ctx context.Context, id uuid.UUID, questionID int) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}
