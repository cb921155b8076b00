package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "olea"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "OLEA_APP_ENV"
	EnvPort       = "OLEA_APP_PORT"
	EnvDBDSN      = "OLEA_DB_DSN"
	EnvDBHost     = "OLEA_DB_HOST"
	EnvDBUser     = "OLEA_DB_USER"
	EnvDBName     = "OLEA_DB_NAME"
	EnvRedisURL   = "OLEA_REDIS_URL"
	EnvJWTSecret  = "OLEA_JWT_SECRET"
	EnvJWTIssuer  = "OLEA_JWT_ISSUER"
	EnvJWTExpMins = "OLEA_JWT_EXPIRATION_MINUTES"

	EnvRazorpayKeyID     = "OLEA_RAZORPAY_KEY_ID"
	EnvRazorpayKeySecret = "OLEA_RAZORPAY_KEY_SECRET"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
