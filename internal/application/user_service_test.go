package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/event"
	repo "github.com/oksasatya/go-user-order-service/internal/domain/repository"
	"github.com/oksasatya/go-user-order-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-order-service/pkg/helpers"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []event.UserEvent
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := body.(event.UserEvent); ok {
		f.events = append(f.events, ev)
	}
	return f.err
}

func (f *fakePublisher) types() []event.Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]event.Type, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeSearch struct {
	q    string
	size int
}

func (f *fakeSearch) Search(_ context.Context, q string, size int) ([]entity.UserProfile, error) {
	f.q, f.size = q, size
	return []entity.UserProfile{{UserID: 1, Username: "ada"}}, nil
}

func newService(pub Publisher) (*Service, *memory.UserRepository) {
	r := memory.NewUserRepository(helpers.NewPasswordHasher(bcrypt.MinCost))
	return NewService(r, pub, nil, helpers.NewDiscardLogger()), r
}

func sampleUser(id int64, username string) entity.User {
	return entity.User{
		UserID:   id,
		Username: username,
		Password: "pa55word",
		FullName: entity.FullName{FirstName: "Ada", LastName: "Lovelace"},
		Age:      36,
		Email:    username + "@example.com",
		IsActive: true,
		Hobbies:  []string{"math"},
		Address:  entity.Address{Street: "1 Sq", City: "London", Country: "UK"},
	}
}

func TestCreateAndGetUser(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newService(pub)
	ctx := context.Background()

	p, err := svc.CreateUser(ctx, sampleUser(1, "ada"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.GetUser(ctx, p.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "ada" || got.Email != "ada@example.com" {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := svc.CreateUser(ctx, sampleUser(1, "other")); !errors.Is(err, repo.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if _, err := svc.GetUser(ctx, 2); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	types := pub.types()
	if len(types) != 1 || types[0] != event.UserCreated {
		t.Fatalf("expected one user.created event, got %v", types)
	}
	if pub.events[0].User == nil || pub.events[0].User.UserID != 1 {
		t.Fatalf("created event must carry the profile, got %+v", pub.events[0])
	}
}

func TestListUsersDefaultsFields(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()
	_, _ = svc.CreateUser(ctx, sampleUser(1, "ada"))

	out, err := svc.ListUsers(ctx, nil)
	if err != nil || len(out) != 1 {
		t.Fatalf("list: %v, %v", out, err)
	}
	l := out[0]
	if l.Username == nil || l.FullName == nil || l.Age == nil || l.Email == nil || l.Address == nil {
		t.Fatalf("default fields missing: %+v", l)
	}
	if l.UserID != nil || l.IsActive != nil || l.Hobbies != nil {
		t.Fatalf("non-default fields present: %+v", l)
	}
}

func TestUpdateAndDeletePublish(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newService(pub)
	ctx := context.Background()
	_, _ = svc.CreateUser(ctx, sampleUser(1, "ada"))

	email := "new@example.com"
	d, err := svc.UpdateUser(ctx, 1, repo.UserPatch{Email: &email})
	if err != nil || d.Email != email {
		t.Fatalf("update: %+v, %v", d, err)
	}
	if _, err := svc.UpdateUser(ctx, 1, repo.UserPatch{}); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if err := svc.DeleteUser(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteUser(ctx, 1); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	want := []event.Type{event.UserCreated, event.UserUpdated, event.UserDeleted}
	got := pub.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc, _ := newService(&fakePublisher{err: errors.New("broker down")})
	if _, err := svc.CreateUser(context.Background(), sampleUser(1, "ada")); err != nil {
		t.Fatalf("create should succeed when publishing fails, got %v", err)
	}
}

func TestOrdersAndTotalPrice(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newService(pub)
	ctx := context.Background()
	_, _ = svc.CreateUser(ctx, sampleUser(1, "ada"))

	total, err := svc.TotalPrice(ctx, 1)
	if err != nil || total != 0 {
		t.Fatalf("expected 0, got %v, %v", total, err)
	}

	_, _ = svc.AppendOrder(ctx, 1, entity.Order{ProductName: "pen", Price: 10, Quantity: 2})
	_, _ = svc.AppendOrder(ctx, 1, entity.Order{ProductName: "ink", Price: 5, Quantity: 3})

	orders, err := svc.ListOrders(ctx, 1)
	if err != nil || len(orders) != 2 {
		t.Fatalf("orders: %v, %v", orders, err)
	}
	total, _ = svc.TotalPrice(ctx, 1)
	if total != 35 {
		t.Fatalf("expected 35, got %v", total)
	}

	if _, err := svc.AppendOrder(ctx, 2, entity.Order{ProductName: "x", Price: 1, Quantity: 1}); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.TotalPrice(ctx, 2); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	pub.mu.Lock()
	last := pub.events[len(pub.events)-1]
	pub.mu.Unlock()
	if last.Type != event.OrderAppended || last.Order == nil || last.Order.ProductName != "ink" {
		t.Fatalf("unexpected last event %+v", last)
	}
}

func TestConcurrentAppendOrder(t *testing.T) {
	svc, _ := newService(&fakePublisher{})
	ctx := context.Background()
	_, _ = svc.CreateUser(ctx, sampleUser(1, "ada"))

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AppendOrder(ctx, 1, entity.Order{ProductName: "pen", Price: 2.5, Quantity: 2}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()

	total, _ := svc.TotalPrice(ctx, 1)
	if total != n*5 {
		t.Fatalf("expected %d, got %v", n*5, total)
	}
}

func TestSearchUsers(t *testing.T) {
	svc, _ := newService(nil)
	if _, err := svc.SearchUsers(context.Background(), "ada", 5); !errors.Is(err, ErrSearchDisabled) {
		t.Fatalf("expected ErrSearchDisabled, got %v", err)
	}

	idx := &fakeSearch{}
	svc.Search = idx
	out, err := svc.SearchUsers(context.Background(), "ada", 5)
	if err != nil || len(out) != 1 {
		t.Fatalf("search: %v, %v", out, err)
	}
	if idx.q != "ada" || idx.size != 5 {
		t.Fatalf("query not forwarded: %+v", idx)
	}
}
