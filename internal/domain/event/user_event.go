package event

import (
	"time"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
)

type Type string

const (
	UserCreated   Type = "user.created"
	UserUpdated   Type = "user.updated"
	UserDeleted   Type = "user.deleted"
	OrderAppended Type = "order.appended"
)

// UserEvent is the JSON message put on the events queue after a successful write.
type UserEvent struct {
	Type       Type                `json:"type"`
	UserID     int64               `json:"userId"`
	User       *entity.UserProfile `json:"user,omitempty"`
	Order      *entity.Order       `json:"order,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}

func New(t Type, userID int64) UserEvent {
	return UserEvent{Type: t, UserID: userID, OccurredAt: time.Now().UTC()}
}
