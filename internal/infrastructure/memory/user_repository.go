package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/repository"
	"github.com/oksasatya/go-user-order-service/pkg/helpers"
)

// UserRepository keeps users in process memory. It is selected with
// STORE_DRIVER=memory and backs the service and handler tests.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*entity.User
	hasher *helpers.PasswordHasher
}

func NewUserRepository(hasher *helpers.PasswordHasher) *UserRepository {
	return &UserRepository{users: map[int64]*entity.User{}, hasher: hasher}
}

// StoredPassword exposes the persisted password value of a user.
func (r *UserRepository) StoredPassword(userID int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return "", false
	}
	return u.Password, true
}

func (r *UserRepository) Create(_ context.Context, u entity.User) (*entity.UserProfile, error) {
	hash, err := r.hasher.Hash(u.Password)
	if err != nil {
		return nil, repository.Wrap("hash password", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.UserID]; ok {
		return nil, fmt.Errorf("%w: userId %d", repository.ErrDuplicateKey, u.UserID)
	}
	if r.usernameTaken(u.Username, u.UserID) {
		return nil, fmt.Errorf("%w: username %q", repository.ErrDuplicateKey, u.Username)
	}

	stored := cloneUser(u)
	stored.Password = hash
	if stored.Orders == nil {
		stored.Orders = []entity.Order{}
	}
	r.users[u.UserID] = &stored
	p := stored.Profile()
	return &p, nil
}

func (r *UserRepository) Update(_ context.Context, userID int64, patch repository.UserPatch) (*entity.UserDetail, error) {
	var hash string
	if patch.Password != nil {
		h, err := r.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, repository.Wrap("hash password", err)
		}
		hash = h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Username != nil && r.usernameTaken(*patch.Username, userID) {
		return nil, fmt.Errorf("%w: username %q", repository.ErrDuplicateKey, *patch.Username)
	}

	next := cloneUser(*u)
	if patch.Username != nil {
		next.Username = *patch.Username
	}
	if patch.Password != nil {
		next.Password = hash
	}
	if patch.FullName != nil {
		next.FullName = *patch.FullName
	}
	if patch.Age != nil {
		next.Age = *patch.Age
	}
	if patch.Email != nil {
		next.Email = *patch.Email
	}
	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}
	if patch.Hobbies != nil {
		next.Hobbies = append([]string{}, (*patch.Hobbies)...)
	}
	if patch.Address != nil {
		next.Address = *patch.Address
	}
	if patch.Orders != nil {
		next.Orders = append([]entity.Order{}, (*patch.Orders)...)
	}
	r.users[userID] = &next
	d := cloneUser(next).Detail()
	return &d, nil
}

func (r *UserRepository) Delete(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *UserRepository) AppendOrder(_ context.Context, userID int64, o entity.Order) (*entity.UserDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Orders = append(u.Orders, o)
	d := cloneUser(*u).Detail()
	return &d, nil
}

func (r *UserRepository) List(_ context.Context, fields []entity.UserField) ([]entity.UserListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]entity.UserListing, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.users[id].Listing(fields))
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID int64) (*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	p := cloneUser(*u).Profile()
	return &p, nil
}

func (r *UserRepository) ListOrders(_ context.Context, userID int64) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]entity.Order{}, u.Orders...), nil
}

func (r *UserRepository) SumOrderTotal(_ context.Context, userID int64) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return entity.OrdersTotal(u.Orders), nil
}

func (r *UserRepository) Ping(context.Context) error { return nil }

// usernameTaken must be called with r.mu held.
func (r *UserRepository) usernameTaken(username string, except int64) bool {
	for id, u := range r.users {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}

func cloneUser(u entity.User) entity.User {
	c := u
	if u.Hobbies != nil {
		c.Hobbies = append([]string{}, u.Hobbies...)
	}
	if u.Orders != nil {
		c.Orders = append([]entity.Order{}, u.Orders...)
	}
	return c
}

var _ repository.UserRepository = (*UserRepository)(nil)
