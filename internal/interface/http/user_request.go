package handlers

import (
	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/repository"
)

type fullNameRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=255"`
	LastName  string `json:"lastName" validate:"required,notblank,max=255"`
}

type addressRequest struct {
	Street  string `json:"street" validate:"required,notblank,max=255"`
	City    string `json:"city" validate:"required,notblank,max=255"`
	Country string `json:"country" validate:"required,notblank,max=255"`
}

type orderRequest struct {
	ProductName string   `json:"productName" validate:"required,notblank,max=255"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Quantity    *int     `json:"quantity" validate:"required,gt=0"`
}

// createUserRequest uses pointers where a zero value must still count as "present".
type createUserRequest struct {
	UserID   *int64           `json:"userId" validate:"required"`
	Username string           `json:"username" validate:"required,notblank,max=255"`
	Password string           `json:"password" validate:"required,notblank,maxbytes=72"`
	FullName *fullNameRequest `json:"fullName" validate:"required"`
	Age      *float64         `json:"age" validate:"required,gt=0"`
	Email    string           `json:"email" validate:"required,email"`
	IsActive *bool            `json:"isActive"`
	Hobbies  []string         `json:"hobbies" validate:"required,dive,min=1,max=255"`
	Address  *addressRequest  `json:"address" validate:"required"`
	Orders   []orderRequest   `json:"orders" validate:"omitempty,dive"`
}

// updateUserRequest is a partial user. userId is not patchable and is ignored.
// A provided fullName or address replaces the stored object, so it must be complete.
type updateUserRequest struct {
	Username *string          `json:"username" validate:"omitempty,notblank,max=255"`
	Password *string          `json:"password" validate:"omitempty,notblank,maxbytes=72"`
	FullName *fullNameRequest `json:"fullName" validate:"omitempty"`
	Age      *float64         `json:"age" validate:"omitempty,gt=0"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	IsActive *bool            `json:"isActive"`
	Hobbies  []string         `json:"hobbies" validate:"omitempty,dive,min=1,max=255"`
	Address  *addressRequest  `json:"address" validate:"omitempty"`
	Orders   []orderRequest   `json:"orders" validate:"omitempty,dive"`
}

func (r fullNameRequest) toEntity() entity.FullName {
	return entity.FullName{FirstName: r.FirstName, LastName: r.LastName}
}

func (r addressRequest) toEntity() entity.Address {
	return entity.Address{Street: r.Street, City: r.City, Country: r.Country}
}

func (r orderRequest) toEntity() entity.Order {
	return entity.Order{ProductName: r.ProductName, Price: *r.Price, Quantity: *r.Quantity}
}

func toOrders(in []orderRequest) []entity.Order {
	out := make([]entity.Order, 0, len(in))
	for _, o := range in {
		out = append(out, o.toEntity())
	}
	return out
}

func (r createUserRequest) toEntity() entity.User {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return entity.User{
		UserID:   *r.UserID,
		Username: r.Username,
		Password: r.Password,
		FullName: r.FullName.toEntity(),
		Age:      *r.Age,
		Email:    r.Email,
		IsActive: active,
		Hobbies:  append([]string{}, r.Hobbies...),
		Address:  r.Address.toEntity(),
		Orders:   toOrders(r.Orders),
	}
}

func (r updateUserRequest) toPatch() repository.UserPatch {
	p := repository.UserPatch{
		Username: r.Username,
		Password: r.Password,
		Age:      r.Age,
		Email:    r.Email,
		IsActive: r.IsActive,
	}
	if r.FullName != nil {
		fn := r.FullName.toEntity()
		p.FullName = &fn
	}
	if r.Address != nil {
		addr := r.Address.toEntity()
		p.Address = &addr
	}
	if r.Hobbies != nil {
		hobbies := append([]string{}, r.Hobbies...)
		p.Hobbies = &hobbies
	}
	if r.Orders != nil {
		orders := toOrders(r.Orders)
		p.Orders = &orders
	}
	return p
}
