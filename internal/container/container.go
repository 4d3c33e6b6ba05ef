package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-user-order-service/config"
	"github.com/oksasatya/go-user-order-service/pkg/helpers"
	"github.com/oksasatya/go-user-order-service/pkg/validation"
)

// Container carries the infrastructure built in cmd/main.go to the router,
// which wires modules from it. Mongo, Redis, ES and Publisher may be nil
// when the matching feature is not configured.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Mongo     *mongo.Client
	Redis     *redis.Client
	ES        *elasticsearch.Client
	Publisher *helpers.RabbitPublisher
	Hasher    *helpers.PasswordHasher
	Validator *validation.Validator
}

// New fills the always-present members from cfg; callers attach clients afterwards.
func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config:    cfg,
		Logger:    logger,
		Hasher:    helpers.NewPasswordHasher(cfg.BcryptCost),
		Validator: validation.New(),
	}
}

// UsersCollection returns the users collection, or nil without a mongo client.
func (c *Container) UsersCollection() *mongo.Collection {
	if c.Mongo == nil {
		return nil
	}
	return c.Mongo.Database(c.Config.MongoDatabase).Collection(c.Config.MongoUsersCollection)
}
