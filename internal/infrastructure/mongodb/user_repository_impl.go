package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/repository"
	"github.com/oksasatya/go-user-order-service/pkg/helpers"
)

type UserRepository struct {
	coll   *mongo.Collection
	hasher *helpers.PasswordHasher
}

func NewUserRepository(coll *mongo.Collection, hasher *helpers.PasswordHasher) *UserRepository {
	return &UserRepository{coll: coll, hasher: hasher}
}

// Create inserts u with its password hashed. The existence check only gives
// a friendly error; the unique indexes on userId and username are what
// actually reject concurrent duplicates.
func (r *UserRepository) Create(ctx context.Context, u entity.User) (*entity.UserProfile, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		byUserID(u.UserID),
		bson.D{{Key: "username", Value: u.Username}},
	}}}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return nil, repository.Wrap("count users", err)
	}
	if n > 0 {
		return nil, duplicate(u.UserID, u.Username)
	}

	hash, err := r.hasher.Hash(u.Password)
	if err != nil {
		return nil, repository.Wrap("hash password", err)
	}
	doc := newUserDocument(u, hash)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicate(u.UserID, u.Username)
		}
		return nil, repository.Wrap("insert user", err)
	}
	p := doc.profile()
	return &p, nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, patch repository.UserPatch) (*entity.UserDetail, error) {
	set, err := r.setDocument(patch)
	if err != nil {
		return nil, err
	}

	var d entity.UserDetail
	if len(set) == 0 {
		err = r.coll.FindOne(ctx, byUserID(userID), options.FindOne().SetProjection(detailProjection)).Decode(&d)
	} else {
		opts := options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(detailProjection)
		err = r.coll.FindOneAndUpdate(ctx, byUserID(userID), bson.D{{Key: "$set", Value: set}}, opts).Decode(&d)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: username %q", repository.ErrDuplicateKey, deref(patch.Username))
		}
		return nil, repository.Wrap("update user", err)
	}
	if d.Orders == nil {
		d.Orders = []entity.Order{}
	}
	return &d, nil
}

// setDocument builds the $set body for patch, hashing a new password first.
func (r *UserRepository) setDocument(patch repository.UserPatch) (bson.D, error) {
	set := bson.D{}
	if patch.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *patch.Username})
	}
	if patch.Password != nil {
		hash, err := r.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, repository.Wrap("hash password", err)
		}
		set = append(set, bson.E{Key: "password", Value: hash})
	}
	if patch.FullName != nil {
		set = append(set, bson.E{Key: "fullName", Value: *patch.FullName})
	}
	if patch.Age != nil {
		set = append(set, bson.E{Key: "age", Value: *patch.Age})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.IsActive != nil {
		set = append(set, bson.E{Key: "isActive", Value: *patch.IsActive})
	}
	if patch.Hobbies != nil {
		set = append(set, bson.E{Key: "hobbies", Value: *patch.Hobbies})
	}
	if patch.Address != nil {
		set = append(set, bson.E{Key: "address", Value: *patch.Address})
	}
	if patch.Orders != nil {
		set = append(set, bson.E{Key: "orders", Value: *patch.Orders})
	}
	return set, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	res, err := r.coll.DeleteOne(ctx, byUserID(userID))
	if err != nil {
		return repository.Wrap("delete user", err)
	}
	if res.DeletedCount < 1 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendOrder pushes o onto the user's orders in a single update, so
// concurrent appends to the same user cannot overwrite each other.
func (r *UserRepository) AppendOrder(ctx context.Context, userID int64, o entity.Order) (*entity.UserDetail, error) {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "orders", Value: o}}}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(detailProjection)

	var d entity.UserDetail
	if err := r.coll.FindOneAndUpdate(ctx, byUserID(userID), update, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, repository.Wrap("append order", err)
	}
	if d.Orders == nil {
		d.Orders = []entity.Order{}
	}
	return &d, nil
}

func (r *UserRepository) List(ctx context.Context, fields []entity.UserField) ([]entity.UserListing, error) {
	opts := options.Find().
		SetProjection(listingProjection(fields)).
		SetSort(bson.D{{Key: "userId", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, repository.Wrap("list users", err)
	}
	out := make([]entity.UserListing, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, repository.Wrap("list users", err)
	}
	for i := range out {
		if h := out[i].Hobbies; h != nil && *h == nil {
			*h = []string{}
		}
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := r.coll.FindOne(ctx, byUserID(userID), options.FindOne().SetProjection(profileProjection)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, repository.Wrap("get user", err)
	}
	return &p, nil
}

func (r *UserRepository) ListOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	doc, err := r.orders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doc.Orders, nil
}

func (r *UserRepository) SumOrderTotal(ctx context.Context, userID int64) (float64, error) {
	doc, err := r.orders(ctx, userID)
	if err != nil {
		return 0, err
	}
	return entity.OrdersTotal(doc.Orders), nil
}

func (r *UserRepository) orders(ctx context.Context, userID int64) (*ordersDocument, error) {
	var doc ordersDocument
	err := r.coll.FindOne(ctx, byUserID(userID), options.FindOne().SetProjection(ordersProjection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, repository.Wrap("get orders", err)
	}
	if doc.Orders == nil {
		doc.Orders = []entity.Order{}
	}
	return &doc, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func duplicate(userID int64, username string) error {
	return fmt.Errorf("%w: userId %d or username %q is taken", repository.ErrDuplicateKey, userID, username)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.UserRepository = (*UserRepository)(nil)
