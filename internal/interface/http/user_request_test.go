package handlers

import (
	"testing"

	"github.com/oksasatya/go-user-order-service/pkg/validation"
)

func TestCreateRequestDefaults(t *testing.T) {
	var req createUserRequest
	body := `{"userId": 0, "username": "u", "password": "p",
		"fullName": {"firstName": "F", "lastName": "L"}, "age": 1.5,
		"email": "u@example.com", "hobbies": [],
		"address": {"street": "s", "city": "c", "country": "k"}}`
	if err := validation.New().Decode([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	u := req.toEntity()
	if !u.IsActive {
		t.Fatal("isActive should default to true")
	}
	if u.UserID != 0 || u.Age != 1.5 {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Orders == nil || len(u.Orders) != 0 || u.Hobbies == nil {
		t.Fatalf("orders and hobbies should be empty, not nil: %+v", u)
	}
}

func TestUpdateRequestToPatch(t *testing.T) {
	var req updateUserRequest
	if err := validation.New().Decode([]byte(`{}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !req.toPatch().Empty() {
		t.Fatal("empty body should produce an empty patch")
	}

	req = updateUserRequest{}
	body := `{"isActive": false, "hobbies": [], "orders": [{"productName": "pen", "price": 2, "quantity": 3}]}`
	if err := validation.New().Decode([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := req.toPatch()
	if p.IsActive == nil || *p.IsActive {
		t.Fatal("isActive=false must be kept")
	}
	if p.Hobbies == nil || len(*p.Hobbies) != 0 {
		t.Fatal("an empty hobbies array clears hobbies")
	}
	if p.Orders == nil || len(*p.Orders) != 1 || (*p.Orders)[0].Subtotal() != 6 {
		t.Fatalf("unexpected orders %+v", p.Orders)
	}
	if p.Username != nil || p.FullName != nil || p.Address != nil {
		t.Fatalf("absent fields must stay nil: %+v", p)
	}
}

func TestQuantityMustBeInteger(t *testing.T) {
	var req orderRequest
	err := validation.New().Decode([]byte(`{"productName": "pen", "price": 1, "quantity": 1.5}`), &req)
	verr, ok := err.(*validation.ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if reason, _ := verr.Reason("quantity"); reason != "must be an integer" {
		t.Fatalf("unexpected reason %q", reason)
	}
}
