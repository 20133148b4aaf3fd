package session

import (
	"context"
	"time"
)

// Store persists session state. Update runs fn on a copy of the state while
// holding the session's write lock; the copy replaces the stored state only
// when fn returns nil.
type Store interface {
	Create(ctx context.Context, st State) error
	Get(ctx context.Context, id string) (State, error)
	Update(ctx context.Context, id string, fn func(*State) error) (State, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by stores that expire sessions themselves.
type Sweeper interface {
	Sweep(olderThan time.Time) int
	Len() int
}
