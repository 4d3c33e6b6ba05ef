package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-user-order-service/internal/interface/http"
	"github.com/oksasatya/go-user-order-service/internal/interface/middleware"
)

// UserModule wires the user/order handlers under the given RouterGroup (usually /api):
//
//	POST   /users
//	GET    /users
//	GET    /users/:userId
//	PUT    /users/:userId
//	DELETE /users/:userId
//	PUT    /users/:userId/orders
//	GET    /users/:userId/orders
//	GET    /users/:userId/orders/total-price
//	GET    /search/users
type UserModule struct {
	Handler       *handlers.UserHandler
	Redis         *redis.Client
	PerMinute     int
	BypassPrivate bool
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, perMinute int, bypassPrivate bool) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, PerMinute: perMinute, BypassPrivate: bypassPrivate}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	var allow middleware.AllowFunc
	if m.BypassPrivate {
		allow = middleware.AllowPrivateIP()
	}
	limiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIP(), allow)
	// Writes share a tighter per-route bucket on top of the per-IP one.
	writeMax := m.PerMinute / 5
	if writeMax < 1 {
		writeMax = m.PerMinute
	}
	writeLimiter := middleware.RateLimit(m.Redis, writeMax, time.Minute, middleware.KeyByIPAndRoute(), allow)

	users := rg.Group("/users")
	users.Use(limiter)
	{
		users.POST("", writeLimiter, m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/:userId", m.Handler.Get)
		users.PUT("/:userId", writeLimiter, m.Handler.Update)
		users.DELETE("/:userId", writeLimiter, m.Handler.Delete)
		users.PUT("/:userId/orders", writeLimiter, m.Handler.AddOrder)
		users.GET("/:userId/orders", m.Handler.ListOrders)
		users.GET("/:userId/orders/total-price", m.Handler.TotalPrice)
	}

	rg.GET("/search/users", limiter, m.Handler.Search)
}
