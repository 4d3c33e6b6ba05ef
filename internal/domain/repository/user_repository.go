package repository

import (
	"context"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
)

// UserPatch lists the fields an update replaces. Nil means "leave as is".
// A non-nil nested object replaces the stored object as a whole.
type UserPatch struct {
	Username *string
	Password *string
	FullName *entity.FullName
	Age      *float64
	Email    *string
	IsActive *bool
	Hobbies  *[]string
	Address  *entity.Address
	Orders   *[]entity.Order
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Password == nil && p.FullName == nil && p.Age == nil &&
		p.Email == nil && p.IsActive == nil && p.Hobbies == nil && p.Address == nil && p.Orders == nil
}

// UserRepository is the sole authority for reading and writing user documents.
// Implementations hash any password before it is written.
type UserRepository interface {
	Create(ctx context.Context, u entity.User) (*entity.UserProfile, error)
	Update(ctx context.Context, userID int64, patch UserPatch) (*entity.UserDetail, error)
	Delete(ctx context.Context, userID int64) error
	AppendOrder(ctx context.Context, userID int64, o entity.Order) (*entity.UserDetail, error)
	List(ctx context.Context, fields []entity.UserField) ([]entity.UserListing, error)
	// GetByID returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, userID int64) (*entity.UserProfile, error)
	ListOrders(ctx context.Context, userID int64) ([]entity.Order, error)
	SumOrderTotal(ctx context.Context, userID int64) (float64, error)
	Ping(ctx context.Context) error
}
