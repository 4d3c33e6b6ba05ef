package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/event"
	repo "github.com/oksasatya/go-user-order-service/internal/domain/repository"
)

// ErrSearchDisabled is returned by SearchUsers when no search index is configured.
var ErrSearchDisabled = errors.New("search is not configured")

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// SearchIndex is satisfied by the elasticsearch UserIndex.
type SearchIndex interface {
	Search(ctx context.Context, q string, size int) ([]entity.UserProfile, error)
}

type Service struct {
	Repo      repo.UserRepository
	Publisher Publisher
	Search    SearchIndex
	Logger    *logrus.Logger
}

// NewService builds the user service. publisher and search may be nil.
func NewService(r repo.UserRepository, publisher Publisher, search SearchIndex, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Publisher: publisher, Search: search, Logger: logger}
}

func (s *Service) CreateUser(ctx context.Context, u entity.User) (*entity.UserProfile, error) {
	p, err := s.Repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	usersCreated.Add(1)

	ev := event.New(event.UserCreated, p.UserID)
	ev.User = p
	s.publish(ctx, ev)
	return p, nil
}

func (s *Service) ListUsers(ctx context.Context, fields []entity.UserField) ([]entity.UserListing, error) {
	if len(fields) == 0 {
		fields = entity.DefaultListFields
	}
	return s.Repo.List(ctx, fields)
}

// GetUser turns an empty lookup into repo.ErrNotFound.
func (s *Service) GetUser(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	p, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (s *Service) UpdateUser(ctx context.Context, userID int64, patch repo.UserPatch) (*entity.UserDetail, error) {
	d, err := s.Repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	if !patch.Empty() {
		ev := event.New(event.UserUpdated, userID)
		p := d.UserProfile
		ev.User = &p
		s.publish(ctx, ev)
	}
	return d, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	usersDeleted.Add(1)
	s.publish(ctx, event.New(event.UserDeleted, userID))
	return nil
}

func (s *Service) AppendOrder(ctx context.Context, userID int64, o entity.Order) (*entity.UserDetail, error) {
	d, err := s.Repo.AppendOrder(ctx, userID, o)
	if err != nil {
		return nil, err
	}
	ordersAppended.Add(1)

	ev := event.New(event.OrderAppended, userID)
	ev.Order = &o
	s.publish(ctx, ev)
	return d, nil
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *Service) TotalPrice(ctx context.Context, userID int64) (float64, error) {
	return s.Repo.SumOrderTotal(ctx, userID)
}

// SearchUsers runs a full-text search over indexed profiles.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserProfile, error) {
	if s.Search == nil {
		return nil, ErrSearchDisabled
	}
	return s.Search.Search(ctx, q, size)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}

// publish never fails the caller; a lost event only delays the search index.
func (s *Service) publish(ctx context.Context, ev event.UserEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"event":   ev.Type,
			"user_id": ev.UserID,
		}).Warn("publish user event failed")
	}
}
