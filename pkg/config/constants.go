package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "storegrade"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "STOREGRADE_APP_ENV"
	EnvPort                   = "STOREGRADE_APP_PORT"
	EnvDBDSN                  = "STOREGRADE_DB_DSN"
	EnvDBHost                 = "STOREGRADE_DB_HOST"
	EnvDBUser                 = "STOREGRADE_DB_USER"
	EnvDBName                 = "STOREGRADE_DB_NAME"
	EnvRedisURL               = "STOREGRADE_REDIS_URL"
	EnvJWTSecret              = "STOREGRADE_JWT_SECRET"
	EnvJWTIssuer              = "STOREGRADE_JWT_ISSUER"
	EnvJWTExpMins             = "STOREGRADE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "STOREGRADE_REFRESH_TOKEN_TTL_MINUTES"
	EnvServiceKey             = "STOREGRADE_SERVICE_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
