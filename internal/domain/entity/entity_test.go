package entity

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOrdersTotal(t *testing.T) {
	orders := []Order{
		{ProductName: "pen", Price: 10, Quantity: 2},
		{ProductName: "ink", Price: 5, Quantity: 3},
	}
	if got := OrdersTotal(orders); got != 35 {
		t.Fatalf("expected 35, got %v", got)
	}
	reversed := []Order{orders[1], orders[0]}
	if got := OrdersTotal(reversed); got != 35 {
		t.Fatalf("order of elements changed the total: %v", got)
	}
	if got := OrdersTotal(nil); got != 0 {
		t.Fatalf("expected 0 for no orders, got %v", got)
	}
}

func TestParseUserFields(t *testing.T) {
	got, err := ParseUserFields(" username,email ,username")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []UserField{FieldUsername, FieldEmail}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for _, in := range []string{"password", "_id", "username,secret", "", " , "} {
		if _, err := ParseUserFields(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestListingOnlyCarriesRequestedFields(t *testing.T) {
	u := User{
		UserID:   7,
		Username: "ada",
		Password: "secret",
		Email:    "ada@example.com",
		Age:      36,
		Hobbies:  []string{"chess"},
	}
	l := u.Listing([]UserField{FieldUsername, FieldAge})
	if l.Username == nil || *l.Username != "ada" || l.Age == nil || *l.Age != 36 {
		t.Fatalf("requested fields missing: %+v", l)
	}
	if l.UserID != nil || l.Email != nil || l.Hobbies != nil || l.FullName != nil || l.Address != nil || l.IsActive != nil {
		t.Fatalf("unrequested fields present: %+v", l)
	}
}

func TestListingKeepsEmptyHobbies(t *testing.T) {
	l := User{UserID: 1, Hobbies: []string{}}.Listing([]UserField{FieldHobbies})
	b, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"hobbies":[]}` {
		t.Fatalf("unexpected listing %s", b)
	}
}

func TestDetailNeverHasNilOrders(t *testing.T) {
	d := User{UserID: 1}.Detail()
	if d.Orders == nil {
		t.Fatal("expected empty, non-nil orders")
	}
}
