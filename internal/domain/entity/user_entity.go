package entity

// User is the aggregate root for the user domain.
// Orders are owned by the user and have no identity of their own.
// Password holds plaintext only on its way into the store; everything the store
// returns is one of the projections in user_view.go, none of which carry it.
type User struct {
	UserID   int64
	Username string
	Password string
	FullName FullName
	Age      float64
	Email    string
	IsActive bool
	Hobbies  []string
	Address  Address
	Orders   []Order
}

type FullName struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	Country string `json:"country" bson:"country"`
}

// Profile returns the caller-facing projection of u.
func (u User) Profile() UserProfile {
	return UserProfile{
		UserID:   u.UserID,
		Username: u.Username,
		FullName: u.FullName,
		Age:      u.Age,
		Email:    u.Email,
		IsActive: u.IsActive,
		Hobbies:  u.Hobbies,
		Address:  u.Address,
	}
}

// Detail is Profile plus the order list.
func (u User) Detail() UserDetail {
	orders := u.Orders
	if orders == nil {
		orders = []Order{}
	}
	return UserDetail{UserProfile: u.Profile(), Orders: orders}
}
