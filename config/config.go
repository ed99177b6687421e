package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "16MB"
	defaultEdition            = EditionAgriConnect
	defaultPaymentProvider    = "dummy"
	defaultCurrency           = "INR"
	defaultBcryptCost         = 10
	defaultTokenTTL           = 24 * time.Hour
	defaultSessionMaxAge      = 7 * 24 * 60 * 60
	defaultUploadMaxWidth     = 800
	defaultUploadMaxBytes     = 5 << 20
	defaultLoginRate          = 1
	defaultLoginBurst         = 5
)

// Editions of the storefront served by one process.
const (
	EditionAgriConnect = "agriconnect"
	EditionStorefront  = "storefront"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Edition     string `json:"edition" yaml:"edition"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
	} `json:"http" yaml:"http"`

	Database *DatabaseConfig `json:"database" yaml:"database"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Session *SessionConfig `json:"session" yaml:"session"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Admins are console accounts that never live in the users table
	Admins []AdminAccount `json:"admins" yaml:"admins"`

	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`

	Payment *PaymentConfig `json:"payment" yaml:"payment"`

	// PubSub configuration for order event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Redis backs the admin inbox and idempotency keys when addr is set
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Uploads *UploadsConfig `json:"uploads" yaml:"uploads"`

	// QRCode configuration for delivery QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RateLimitConfig limits login attempts per client IP
type RateLimitConfig struct {
	RPS       float64       `json:"rps" yaml:"rps"`
	Burst     int           `json:"burst" yaml:"burst"`
	ExpiresIn time.Duration `json:"expiresIn" yaml:"expiresIn"`
}

// DatabaseConfig selects the relational store
type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	SQLite struct {
		Path string `json:"path" yaml:"path"`
	} `json:"sqlite" yaml:"sqlite"`
	MySQL struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"mysql" yaml:"mysql"`
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

type SessionConfig struct {
	Key    string `json:"key" yaml:"key"`
	Name   string `json:"name" yaml:"name"`
	Secure bool   `json:"secure" yaml:"secure"`
	MaxAge int    `json:"maxAge" yaml:"maxAge"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
}

// AdminAccount is a configured console login. Role is "admin" or "field_admin".
type AdminAccount struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Role     string `json:"role" yaml:"role"`
}

// CatalogConfig points at the JSON product files
type CatalogConfig struct {
	ProductsPath     string `json:"productsPath" yaml:"productsPath"`
	FarmProductsPath string `json:"farmProductsPath" yaml:"farmProductsPath"`
	DealersPath      string `json:"dealersPath" yaml:"dealersPath"`
}

// PaymentConfig selects the payment gateway: "dummy" or "razorpay"
type PaymentConfig struct {
	Provider  string `json:"provider" yaml:"provider"`
	KeyID     string `json:"keyId" yaml:"keyId"`
	KeySecret string `json:"keySecret" yaml:"keySecret"`
	BaseURL   string `json:"baseUrl" yaml:"baseUrl"`
	Currency  string `json:"currency" yaml:"currency"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local", "google" or "kafka"; empty disables publishing
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	Kafka KafkaConfig `json:"kafka" yaml:"kafka"`
}

type KafkaConfig struct {
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

type RedisConfig struct {
	Addr           string        `json:"addr" yaml:"addr"`
	Password       string        `json:"password" yaml:"password"`
	DB             int           `json:"db" yaml:"db"`
	IdempotencyTTL time.Duration `json:"idempotencyTtl" yaml:"idempotencyTtl"`
}

// UploadsConfig controls where community images go
type UploadsConfig struct {
	BucketURL    string `json:"bucketUrl" yaml:"bucketUrl"`
	PublicPrefix string `json:"publicPrefix" yaml:"publicPrefix"`
	MaxWidth     uint   `json:"maxWidth" yaml:"maxWidth"`
	MaxBytes     int64  `json:"maxBytes" yaml:"maxBytes"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	configFile, err := findConfigFile(currEnv, configPath)
	if err != nil {
		return nil, err
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override YAML. HTTP_MAXREQUESTBODYSIZE -> http.maxRequestBodySize
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(currEnv string, configPath []string) (string, error) {
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Database.Driver == DriverPostgres {
		if cfg.Postgres == nil {
			return nil, errors.New("postgres section is required for the postgres driver")
		}
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills every optional section so callers never nil-check.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.RateLimit.RPS <= 0 {
		cfg.HTTP.RateLimit.RPS = defaultLoginRate
	}
	if cfg.HTTP.RateLimit.Burst <= 0 {
		cfg.HTTP.RateLimit.Burst = defaultLoginBurst
	}
	if cfg.HTTP.RateLimit.ExpiresIn <= 0 {
		cfg.HTTP.RateLimit.ExpiresIn = 3 * time.Minute
	}

	switch strings.ToLower(cfg.Env.Edition) {
	case EditionStorefront:
		cfg.Env.Edition = EditionStorefront
	case EditionAgriConnect:
		cfg.Env.Edition = EditionAgriConnect
	default:
		cfg.Env.Edition = defaultEdition
	}

	if cfg.Database == nil {
		cfg.Database = &DatabaseConfig{}
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.Driver == DriverSQLite && cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "users.db"
	}

	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.Name == "" {
		cfg.Session.Name = "session"
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = defaultSessionMaxAge
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}

	if cfg.Catalog == nil {
		cfg.Catalog = &CatalogConfig{}
	}
	if cfg.Catalog.ProductsPath == "" {
		cfg.Catalog.ProductsPath = "products.json"
	}
	if cfg.Catalog.FarmProductsPath == "" {
		cfg.Catalog.FarmProductsPath = "farm_product.json"
	}
	if cfg.Catalog.DealersPath == "" {
		cfg.Catalog.DealersPath = "dealers.json"
	}

	if cfg.Payment == nil {
		cfg.Payment = &PaymentConfig{}
	}
	if cfg.Payment.Provider == "" {
		cfg.Payment.Provider = defaultPaymentProvider
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = defaultCurrency
	}

	if cfg.Redis == nil {
		cfg.Redis = &RedisConfig{}
	}
	if cfg.Redis.IdempotencyTTL == 0 {
		cfg.Redis.IdempotencyTTL = 24 * time.Hour
	}

	if cfg.Uploads == nil {
		cfg.Uploads = &UploadsConfig{}
	}
	if cfg.Uploads.BucketURL == "" {
		cfg.Uploads.BucketURL = "file:///tmp/agriconnect-uploads?create_dir=true"
	}
	if cfg.Uploads.PublicPrefix == "" {
		cfg.Uploads.PublicPrefix = "/static/uploads"
	}
	if cfg.Uploads.MaxWidth == 0 {
		cfg.Uploads.MaxWidth = defaultUploadMaxWidth
	}
	if cfg.Uploads.MaxBytes == 0 {
		cfg.Uploads.MaxBytes = defaultUploadMaxBytes
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M"}
	}
}

// FindAdmin returns the configured console account for username.
func (c *Config) FindAdmin(username string) (AdminAccount, bool) {
	for _, admin := range c.Admins {
		if admin.Username == username {
			return admin, true
		}
	}

	return AdminAccount{}, false
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}
// until the first index without a host or port.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
