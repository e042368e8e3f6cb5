package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
	EnvAPIBaseURL      = "STOREFRONT_API_BASE_URL"
	EnvAPITimeout      = "STOREFRONT_API_TIMEOUT"
	EnvStorageDriver   = "STOREFRONT_STORAGE_DRIVER"
	EnvStorageDir      = "STOREFRONT_STORAGE_DIR"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
	EnvRedisAddr       = "STOREFRONT_REDIS_ADDR"
	EnvDBDriver        = "STOREFRONT_DB_DRIVER"
	EnvDBDSN           = "STOREFRONT_DB_DSN"
	EnvDeliveryNorth   = "STOREFRONT_DELIVERY_BOUNDS_NORTH"
	EnvDeliverySouth   = "STOREFRONT_DELIVERY_BOUNDS_SOUTH"
	EnvRoutingBaseURL  = "STOREFRONT_ROUTING_BASE_URL"
	EnvDevServerPort   = "STOREFRONT_DEVSERVER_PORT"
	EnvDevServerSecret = "STOREFRONT_DEVSERVER_JWT_SECRET"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Storage   StorageConfig
	Redis     RedisConfig
	DB        DBConfig
	Delivery  DeliveryConfig
	Routing   RoutingConfig
	DevServer DevServerConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate applies the cross-field checks envconfig cannot express.
func (c *Config) Validate() error {
	if err := c.Delivery.validate(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "redis":
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
	case "sqlite", "postgres":
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the %s storage driver", EnvDBDSN, c.Storage.Driver)
		}
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json"`
	// MetricsFile, when set, receives the CLI's metrics in the node_exporter textfile format.
	MetricsFile string `envconfig:"STOREFRONT_METRICS_FILE"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ConsoleLogs reports whether logs should be written for a terminal.
func (a AppConfig) ConsoleLogs() bool {
	return strings.EqualFold(a.LogFormat, "console")
}

type APIConfig struct {
	BaseURL   string        `envconfig:"STOREFRONT_API_BASE_URL" default:"http://localhost:8080"`
	Timeout   time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"15s"`
	UserAgent string        `envconfig:"STOREFRONT_API_USER_AGENT" default:"metalldk-storefront/1"`
}

type StorageConfig struct {
	Driver         string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"file"`
	Dir            string `envconfig:"STOREFRONT_STORAGE_DIR" default:".storefront"`
	CartKey        string `envconfig:"STOREFRONT_STORAGE_CART_KEY" default:"cartItems"`
	RememberKey    string `envconfig:"STOREFRONT_STORAGE_REMEMBER_KEY" default:"rememberedUser"`
	KeyNamespace   string `envconfig:"STOREFRONT_STORAGE_NAMESPACE" default:"storefront"`
	SessionCookies bool   `envconfig:"STOREFRONT_STORAGE_SESSION_COOKIES" default:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type DBConfig struct {
	Driver          string        `envconfig:"STOREFRONT_DB_DRIVER" default:"sqlite"`
	DSN             string        `envconfig:"STOREFRONT_DB_DSN"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"true"`
}

// DeliveryConfig describes the warehouse origin and the in-city box used for pricing.
type DeliveryConfig struct {
	OriginLat       float64 `envconfig:"STOREFRONT_DELIVERY_ORIGIN_LAT" default:"59.820540"`
	OriginLng       float64 `envconfig:"STOREFRONT_DELIVERY_ORIGIN_LNG" default:"30.370800"`
	BoundsNorth     float64 `envconfig:"STOREFRONT_DELIVERY_BOUNDS_NORTH" default:"60.1"`
	BoundsSouth     float64 `envconfig:"STOREFRONT_DELIVERY_BOUNDS_SOUTH" default:"59.7"`
	BoundsWest      float64 `envconfig:"STOREFRONT_DELIVERY_BOUNDS_WEST" default:"29.4"`
	BoundsEast      float64 `envconfig:"STOREFRONT_DELIVERY_BOUNDS_EAST" default:"30.8"`
	RatePerKm       float64 `envconfig:"STOREFRONT_DELIVERY_RATE_PER_KM" default:"50"`
	CapacityDivisor float64 `envconfig:"STOREFRONT_DELIVERY_CAPACITY_DIVISOR" default:"5"`
}

func (d DeliveryConfig) validate() error {
	if d.BoundsSouth >= d.BoundsNorth {
		return fmt.Errorf("delivery bounds: south %.4f must be below north %.4f", d.BoundsSouth, d.BoundsNorth)
	}
	if d.BoundsWest >= d.BoundsEast {
		return fmt.Errorf("delivery bounds: west %.4f must be below east %.4f", d.BoundsWest, d.BoundsEast)
	}
	if d.CapacityDivisor <= 0 {
		return fmt.Errorf("delivery capacity divisor must be positive")
	}
	return nil
}

type RoutingConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_ROUTING_BASE_URL" default:"https://router.project-osrm.org"`
	Profile string        `envconfig:"STOREFRONT_ROUTING_PROFILE" default:"driving"`
	Timeout time.Duration `envconfig:"STOREFRONT_ROUTING_TIMEOUT" default:"10s"`
}

type DevServerConfig struct {
	Port              string   `envconfig:"STOREFRONT_DEVSERVER_PORT" default:"8080"`
	JWTSecret         string   `envconfig:"STOREFRONT_DEVSERVER_JWT_SECRET" default:"dev-secret"`
	JWTIssuer         string   `envconfig:"STOREFRONT_DEVSERVER_JWT_ISSUER" default:"storefront-devserver"`
	SessionTTLMinutes int      `envconfig:"STOREFRONT_DEVSERVER_SESSION_TTL_MINUTES" default:"10080"`
	CORSOrigins       []string `envconfig:"STOREFRONT_DEVSERVER_CORS_ORIGINS" default:"http://localhost:3000"`
	Seed              bool     `envconfig:"STOREFRONT_DEVSERVER_SEED" default:"true"`
	Password          PasswordConfig
}

// SessionTTL returns the cookie/token lifetime.
func (d DevServerConfig) SessionTTL() time.Duration {
	if d.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(d.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOREFRONT_ARGON_MEMORY_KB" default:"19456"`
	ArgonTime        int `envconfig:"STOREFRONT_ARGON_TIME" default:"2"`
	ArgonParallelism int `envconfig:"STOREFRONT_ARGON_PARALLELISM" default:"1"`
	ArgonSaltLen     int `envconfig:"STOREFRONT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOREFRONT_ARGON_KEY_LEN" default:"32"`
}
