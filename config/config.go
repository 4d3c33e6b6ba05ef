package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Store: "mongo" (default) or "memory"
	StoreDriver string

	// MongoDB
	MongoURI             string
	MongoDatabase        string
	MongoUsersCollection string
	MongoConnectTimeout  time.Duration
	MongoMaxPoolSize     uint64

	// Password hashing
	BcryptCost int

	// Migrations
	MigrationsDir  string
	MigrateOnStart bool

	// Redis (rate limiting); empty address disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limiting on /api/users
	RateLimitPerMinute     int
	RateLimitBypassPrivate bool

	// RabbitMQ; empty URL disables event publishing
	RabbitMQURL         string
	RabbitMQEventsQueue string

	// Elasticsearch; empty address list disables search
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESUsersIndex       string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "user-order-service"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "5000"),
		GinMode: getenv("GIN_MODE", "release"),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", "mongo")),

		MongoURI:             getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:        getenv("MONGO_DATABASE", "user_orders"),
		MongoUsersCollection: getenv("MONGO_USERS_COLLECTION", "users"),
		MongoConnectTimeout:  getdur("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		MongoMaxPoolSize:     uint64(getint("MONGO_MAX_POOL_SIZE", 20)),

		BcryptCost: getint("BCRYPT_COST", 12),

		MigrationsDir:  getenv("MIGRATIONS_DIR", "db/migrations"),
		MigrateOnStart: getbool("MIGRATE_ON_START", true),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		RateLimitPerMinute:     getint("RATE_LIMIT_PER_MINUTE", 300),
		RateLimitBypassPrivate: getbool("RATE_LIMIT_BYPASS_PRIVATE", false),

		RabbitMQURL:         getenv("RABBITMQ_URL", ""),
		RabbitMQEventsQueue: getenv("RABBITMQ_EVENTS_QUEUE", "user_events"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "users"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		// Debug metrics toggle (default true to preserve existing behavior)
		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// UseMemoryStore reports whether the in-process store was selected
func (c *Config) UseMemoryStore() bool {
	return c.StoreDriver == "memory"
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
