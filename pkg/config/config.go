package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv            = "STOREFRONT_APP_ENV"
	EnvPort              = "STOREFRONT_APP_PORT"
	EnvLogLevel          = "STOREFRONT_LOG_LEVEL"
	EnvTaxRate           = "STOREFRONT_CHECKOUT_TAX_RATE"
	EnvDeliveryFee       = "STOREFRONT_CHECKOUT_DELIVERY_FEE"
	EnvSubmitTimeout     = "STOREFRONT_CHECKOUT_SUBMIT_TIMEOUT"
	EnvOrdersDelay       = "STOREFRONT_ORDERS_DELAY"
	EnvOrdersFail        = "STOREFRONT_ORDERS_FAIL"
	EnvRedisURL          = "STOREFRONT_REDIS_URL"
	EnvRedisAddr         = "STOREFRONT_REDIS_ADDR"
	EnvSessionTTL        = "STOREFRONT_SESSION_TTL"
	EnvCatalogLatency    = "STOREFRONT_CATALOG_LATENCY"
	EnvCORSAllowedOrigin = "STOREFRONT_CORS_ALLOWED_ORIGINS"
)

type Config struct {
	App           AppConfig
	Checkout      CheckoutConfig
	Orders        OrdersConfig
	Catalog       CatalogConfig
	Sessions      SessionsConfig
	Redis         RedisConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var err error
	if c.Checkout.TaxRate.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("%s must be non-negative", EnvTaxRate))
	}
	if c.Checkout.DeliveryFee.IsNegative() {
		err = multierr.Append(err, fmt.Errorf("%s must be non-negative", EnvDeliveryFee))
	}
	if c.Checkout.SubmitTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvSubmitTimeout))
	}
	if c.Orders.Delay < 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be non-negative", EnvOrdersDelay))
	}
	if c.Sessions.TTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvSessionTTL))
	}
	return err
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CheckoutConfig struct {
	TaxRate       decimal.Decimal `envconfig:"STOREFRONT_CHECKOUT_TAX_RATE" default:"0.08"`
	DeliveryFee   decimal.Decimal `envconfig:"STOREFRONT_CHECKOUT_DELIVERY_FEE" default:"3.99"`
	SubmitTimeout time.Duration   `envconfig:"STOREFRONT_CHECKOUT_SUBMIT_TIMEOUT" default:"10s"`
}

type OrdersConfig struct {
	Delay       time.Duration `envconfig:"STOREFRONT_ORDERS_DELAY" default:"1s"`
	PickupETA   string        `envconfig:"STOREFRONT_ORDERS_PICKUP_ETA" default:"15-20 minutes"`
	DeliveryETA string        `envconfig:"STOREFRONT_ORDERS_DELIVERY_ETA" default:"30-40 minutes"`
	Fail        bool          `envconfig:"STOREFRONT_ORDERS_FAIL" default:"false"`
	HistorySize int           `envconfig:"STOREFRONT_ORDERS_HISTORY_SIZE" default:"50"`
}

type CatalogConfig struct {
	Latency time.Duration `envconfig:"STOREFRONT_CATALOG_LATENCY" default:"0s"`
}

type SessionsConfig struct {
	TTL           time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"STOREFRONT_SESSION_SWEEP_INTERVAL" default:"5m"`
}

// RedisConfig is optional; idempotency and auth rate limiting are disabled when neither
// URL nor Address is set.
type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOREFRONT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOREFRONT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOREFRONT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOREFRONT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOREFRONT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
