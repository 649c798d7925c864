package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// List returns entries in chronological order.
	List(ctx context.Context, f Filter) ([]Entry, int64, error)
}
