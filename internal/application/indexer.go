package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/event"
)

// ErrBadEvent marks a message that can never be applied and should be dropped.
var ErrBadEvent = errors.New("bad user event")

// ProfileIndex is satisfied by the elasticsearch UserIndex.
type ProfileIndex interface {
	Put(ctx context.Context, p entity.UserProfile) error
	Remove(ctx context.Context, userID int64) error
}

// Indexer applies user events from the events queue to the search index.
type Indexer struct {
	Index ProfileIndex
}

func NewIndexer(index ProfileIndex) *Indexer {
	return &Indexer{Index: index}
}

// Handle decodes one queued message and applies it. Errors wrapping
// ErrBadEvent are permanent; any other error is worth a retry.
func (ix *Indexer) Handle(ctx context.Context, body []byte) error {
	var ev event.UserEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	switch ev.Type {
	case event.UserCreated, event.UserUpdated:
		if ev.User == nil {
			return fmt.Errorf("%w: %s without user", ErrBadEvent, ev.Type)
		}
		return ix.Index.Put(ctx, *ev.User)
	case event.UserDeleted:
		return ix.Index.Remove(ctx, ev.UserID)
	case event.OrderAppended:
		// orders are not indexed
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadEvent, ev.Type)
	}
}
