package router

import (
	appuser "github.com/oksasatya/go-user-order-service/internal/application"
	"github.com/oksasatya/go-user-order-service/internal/container"
	repouser "github.com/oksasatya/go-user-order-service/internal/domain/repository"
	esinfra "github.com/oksasatya/go-user-order-service/internal/infrastructure/elasticsearch"
	meminfra "github.com/oksasatya/go-user-order-service/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/go-user-order-service/internal/infrastructure/mongodb"
	handlers "github.com/oksasatya/go-user-order-service/internal/interface/http"
	"github.com/oksasatya/go-user-order-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *appuser.Service
	Handler *handlers.UserHandler
}

// NewUserRepository picks the store: memory when configured or when no
// mongo client was built, MongoDB otherwise.
func NewUserRepository(c *container.Container) repouser.UserRepository {
	if c.Config.UseMemoryStore() || c.Mongo == nil {
		return meminfra.NewUserRepository(c.Hasher)
	}
	return mongoinfra.NewUserRepository(c.UsersCollection(), c.Hasher)
}

func buildUserDeps(c *container.Container) UserModuleDeps {
	repo := NewUserRepository(c)

	// Typed nil pointers must not reach the interfaces, or the nil checks in
	// the service stop working.
	var publisher appuser.Publisher
	if c.Publisher != nil {
		publisher = c.Publisher
	}
	var search appuser.SearchIndex
	if c.ES != nil {
		search = esinfra.NewUserIndex(c.ES, c.Config.ESUsersIndex, c.Logger)
	}

	service := appuser.NewService(repo, publisher, search, c.Logger)
	handler := handlers.NewUserHandler(service, c.Validator, c.Logger)

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) UserModuleDeps {
	userDeps := buildUserDeps(c)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(userDeps.Service, c.Logger)))
	r.Add(modules.NewUserModule(userDeps.Handler, c.Redis, c.Config.RateLimitPerMinute, c.Config.RateLimitBypassPrivate))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
	return userDeps
}
