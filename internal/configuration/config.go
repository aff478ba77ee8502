package configuration

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"bazario/internal/logger"
)

type Config struct {
	ServerAddress    string
	DatabaseURI      string
	PaymentAPIURL    string
	PaymentSecretKey string
	IdentityIssuer   string
	IdentityJWKSURL  string
	LogLevel         logger.Level
	LogToFile        bool
}

type tomlConfig struct {
	ServerAddress    string `toml:"server_address"`
	DatabaseURI      string `toml:"database_uri"`
	PaymentAPIURL    string `toml:"payment_api_url"`
	PaymentSecretKey string `toml:"payment_secret_key"`
	IdentityIssuer   string `toml:"identity_issuer"`
	IdentityJWKSURL  string `toml:"identity_jwks_url"`
	LogLevel         string `toml:"log_level"`
	LogToFile        bool   `toml:"log_to_file"`
}

// GetConfig reads the TOML file at path and applies environment overrides.
// PORT, MONGODB_URI, PAYMENT_SECRET_KEY, IDENTITY_ISSUER and IDENTITY_JWKS_URL
// take precedence over the file so deployments can keep secrets out of it.
func GetConfig(path string) (*Config, error) {
	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to decode toml file with path: %s", path)
	}

	if port := os.Getenv("PORT"); port != "" {
		tc.ServerAddress = ":" + port
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		tc.DatabaseURI = uri
	}
	if key := os.Getenv("PAYMENT_SECRET_KEY"); key != "" {
		tc.PaymentSecretKey = key
	}
	if iss := os.Getenv("IDENTITY_ISSUER"); iss != "" {
		tc.IdentityIssuer = iss
	}
	if jwks := os.Getenv("IDENTITY_JWKS_URL"); jwks != "" {
		tc.IdentityJWKSURL = jwks
	}

	if tc.ServerAddress == "" {
		tc.ServerAddress = "localhost:5000"
	}
	if tc.DatabaseURI == "" {
		tc.DatabaseURI = "mongodb://localhost:27017"
	}
	if tc.PaymentAPIURL == "" {
		tc.PaymentAPIURL = "https://api.stripe.com"
	}
	if tc.PaymentSecretKey == "" {
		return nil, errors.New("payment_secret_key is not set")
	}
	if tc.IdentityIssuer == "" {
		return nil, errors.New("identity_issuer is not set")
	}
	if tc.IdentityJWKSURL == "" {
		return nil, errors.New("identity_jwks_url is not set")
	}

	if tc.LogLevel == "" {
		tc.LogLevel = "INFO"
	}
	logLevel, err := logger.ParseLevel(tc.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse log_level: %s", tc.LogLevel)
	}

	return &Config{
		ServerAddress:    tc.ServerAddress,
		DatabaseURI:      tc.DatabaseURI,
		PaymentAPIURL:    tc.PaymentAPIURL,
		PaymentSecretKey: tc.PaymentSecretKey,
		IdentityIssuer:   tc.IdentityIssuer,
		IdentityJWKSURL:  tc.IdentityJWKSURL,
		LogLevel:         logLevel,
		LogToFile:        tc.LogToFile,
	}, nil
}
