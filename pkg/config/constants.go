package config

const EnvPrefix = "SMARTPOS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv          = "SMARTPOS_APP_ENV"
	EnvAppPort         = "SMARTPOS_APP_PORT"
	EnvGeminiAPIKey    = "SMARTPOS_GEMINI_API_KEY"
	EnvGeminiModel     = "SMARTPOS_GEMINI_MODEL"
	EnvReceiptTaxRate  = "SMARTPOS_RECEIPT_TAX_RATE"
	EnvReceiptCurrency = "SMARTPOS_RECEIPT_CURRENCY"
	EnvRedisURL        = "SMARTPOS_REDIS_URL"
)
