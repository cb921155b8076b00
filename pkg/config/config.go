package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
	Razorpay      RazorpayConfig
	SMTP          SMTPConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"OLEA_APP_ENV" required:"true"`
	Port         string   `envconfig:"OLEA_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"OLEA_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"OLEA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"OLEA_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OLEA_DB_DSN"`
	Driver string `envconfig:"OLEA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"OLEA_DB_HOST"`
	Port     int    `envconfig:"OLEA_DB_PORT" default:"5432"`
	User     string `envconfig:"OLEA_DB_USER"`
	Password string `envconfig:"OLEA_DB_PASSWORD"`
	Name     string `envconfig:"OLEA_DB_NAME"`
	SSLMode  string `envconfig:"OLEA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OLEA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OLEA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OLEA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OLEA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OLEA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"OLEA_REDIS_ADDR"`
	Password     string        `envconfig:"OLEA_REDIS_PASSWORD"`
	DB           int           `envconfig:"OLEA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OLEA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OLEA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OLEA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OLEA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OLEA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"OLEA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"OLEA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"OLEA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"OLEA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OLEA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OLEA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OLEA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OLEA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OLEA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"OLEA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"OLEA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"OLEA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"OLEA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"OLEA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"OLEA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CheckoutConfig struct {
	ShippingFlat string `envconfig:"OLEA_CHECKOUT_SHIPPING_FLAT" default:"50.00"`
	Currency     string `envconfig:"OLEA_CHECKOUT_CURRENCY" default:"INR"`
}

// ShippingFee parses the configured flat shipping charge.
func (c CheckoutConfig) ShippingFee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.ShippingFlat))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid shipping fee %q: %w", c.ShippingFlat, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("shipping fee must not be negative")
	}
	return fee, nil
}

type RazorpayConfig struct {
	KeyID     string `envconfig:"OLEA_RAZORPAY_KEY_ID" required:"true"`
	KeySecret string `envconfig:"OLEA_RAZORPAY_KEY_SECRET" required:"true"`
	BaseURL   string `envconfig:"OLEA_RAZORPAY_BASE_URL" default:"https://api.razorpay.com/v1"`
}

type SMTPConfig struct {
	Host        string `envconfig:"OLEA_SMTP_HOST"`
	Port        int    `envconfig:"OLEA_SMTP_PORT" default:"587"`
	Username    string `envconfig:"OLEA_SMTP_USERNAME"`
	Password    string `envconfig:"OLEA_SMTP_PASSWORD"`
	DefaultFrom string `envconfig:"OLEA_SMTP_FROM_EMAIL"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OLEA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
