package config

import "os"

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	ADDRESS         HTTP bind address
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT HMAC secret
//	ORACLE_API_KEY  generative oracle API key
//	ORACLE_MODEL    generative oracle model name
//
// Unset variables leave the existing values untouched.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ORACLE_API_KEY"); ok {
		config.OracleAPIKey = v
	}
	if v, ok := os.LookupEnv("ORACLE_MODEL"); ok {
		config.OracleModel = v
	}
}
