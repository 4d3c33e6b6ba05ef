package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
)

// userDocument is the stored shape of a user. It never leaves this package.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   int64              `bson:"userId"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
	FullName entity.FullName    `bson:"fullName"`
	Age      float64            `bson:"age"`
	Email    string             `bson:"email"`
	IsActive bool               `bson:"isActive"`
	Hobbies  []string           `bson:"hobbies"`
	Address  entity.Address     `bson:"address"`
	Orders   []entity.Order     `bson:"orders"`
}

func newUserDocument(u entity.User, passwordHash string) userDocument {
	orders := u.Orders
	if orders == nil {
		orders = []entity.Order{}
	}
	hobbies := u.Hobbies
	if hobbies == nil {
		hobbies = []string{}
	}
	return userDocument{
		UserID:   u.UserID,
		Username: u.Username,
		Password: passwordHash,
		FullName: u.FullName,
		Age:      u.Age,
		Email:    u.Email,
		IsActive: u.IsActive,
		Hobbies:  hobbies,
		Address:  u.Address,
		Orders:   orders,
	}
}

func (d userDocument) profile() entity.UserProfile {
	return entity.UserProfile{
		UserID:   d.UserID,
		Username: d.Username,
		FullName: d.FullName,
		Age:      d.Age,
		Email:    d.Email,
		IsActive: d.IsActive,
		Hobbies:  d.Hobbies,
		Address:  d.Address,
	}
}

type ordersDocument struct {
	Orders []entity.Order `bson:"orders"`
}

var (
	profileProjection = bson.D{
		{Key: "_id", Value: 0},
		{Key: "userId", Value: 1},
		{Key: "username", Value: 1},
		{Key: "fullName", Value: 1},
		{Key: "age", Value: 1},
		{Key: "email", Value: 1},
		{Key: "isActive", Value: 1},
		{Key: "hobbies", Value: 1},
		{Key: "address", Value: 1},
	}
	detailProjection = bson.D{
		{Key: "_id", Value: 0},
		{Key: "password", Value: 0},
	}
	ordersProjection = bson.D{
		{Key: "_id", Value: 0},
		{Key: "orders", Value: 1},
	}
)

func listingProjection(fields []entity.UserField) bson.D {
	p := bson.D{{Key: "_id", Value: 0}}
	for _, f := range fields {
		p = append(p, bson.E{Key: string(f), Value: 1})
	}
	return p
}

func byUserID(userID int64) bson.D {
	return bson.D{{Key: "userId", Value: userID}}
}
