package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderPushinPay   = "pushinpay"
	ProviderMercadoPago = "mercadopago"

	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
	StoreRedis    = "redis"
	StoreNone     = "none"

	DefaultPixAPIBaseURL = "https://api.pushinpay.com.br/api"

	// ConfigFileEnv names an optional YAML or JSON file with the same keys as the
	// environment. Environment variables win over the file.
	ConfigFileEnv = "PIX_CONFIG_FILE"
)

// Config is built once at startup and handed to constructors. Nothing in the
// service reads the environment after that, except the AWS client loader.
type Config struct {
	Server
	Gateway
	Polling
	Idempotency
	Cache
}

type Server struct {
	Port string
}

type Gateway struct {
	Provider    string
	Mock        bool
	BaseURL     string
	Token       string
	Variant     string
	ChargePath  string
	StatusPath  string
	CallbackURL string
	Timeout     time.Duration

	MercadoPagoAccessToken string
	MercadoPagoPayerEmail  string

	MockPaidAfter int
}

type Polling struct {
	Interval               time.Duration
	MaxDuration            time.Duration
	MaxConsecutiveFailures int
	FinishedRetention      time.Duration
}

type Idempotency struct {
	Store string
	TTL   time.Duration
	Table string
}

type Cache struct {
	Host     string
	Port     string
	Password string
}

var defaults = map[string]any{
	"PORT":                             "8080",
	"PIX_GATEWAY_PROVIDER":             ProviderPushinPay,
	"PIX_API_BASE_URL":                 DefaultPixAPIBaseURL,
	"PIX_GATEWAY_VARIANT":              "pushinpay-v1",
	"PIX_GATEWAY_CHARGE_PATH":          "/pix/cashIn",
	"PIX_GATEWAY_STATUS_PATH":          "/transactions",
	"PIX_GATEWAY_TIMEOUT":              10 * time.Second,
	"MERCADOPAGO_PAYER_EMAIL":          "test_user_br@testuser.com",
	"MOCK_PAID_AFTER":                  2,
	"POLLING_INTERVAL":                 3 * time.Second,
	"POLLING_MAX_DURATION":             15 * time.Minute,
	"POLLING_MAX_CONSECUTIVE_FAILURES": 5,
	"POLLING_FINISHED_RETENTION":       time.Minute,
	"IDEMPOTENCY_STORE":                StoreMemory,
	"IDEMPOTENCY_TTL":                  30 * time.Minute,
	"IDEMPOTENCY_TABLE":                "charge_requests",
	"CACHE_HOST":                       "localhost",
	"CACHE_PORT":                       "6379",
}

func NewConfig() *Config {
	v := newViper()

	return &Config{
		Server: Server{
			Port: getString(v, "PORT"),
		},
		Gateway: Gateway{
			Provider:               strings.ToLower(getString(v, "PIX_GATEWAY_PROVIDER")),
			Mock:                   getBool(v, "PAYMENT_GATEWAY_MOCK") || getBool(v, "MERCADOPAGO_MOCK"),
			BaseURL:                getString(v, "PIX_API_BASE_URL"),
			Token:                  getString(v, "PIX_API_TOKEN"),
			Variant:                getString(v, "PIX_GATEWAY_VARIANT"),
			ChargePath:             getString(v, "PIX_GATEWAY_CHARGE_PATH"),
			StatusPath:             getString(v, "PIX_GATEWAY_STATUS_PATH"),
			CallbackURL:            getString(v, "PIX_CALLBACK_URL"),
			Timeout:                getDuration(v, "PIX_GATEWAY_TIMEOUT"),
			MercadoPagoAccessToken: getString(v, "MERCADOPAGO_ACCESS_TOKEN"),
			MercadoPagoPayerEmail:  getString(v, "MERCADOPAGO_PAYER_EMAIL"),
			MockPaidAfter:          getInt(v, "MOCK_PAID_AFTER"),
		},
		Polling: Polling{
			Interval:               getDuration(v, "POLLING_INTERVAL"),
			MaxDuration:            getDuration(v, "POLLING_MAX_DURATION"),
			MaxConsecutiveFailures: getInt(v, "POLLING_MAX_CONSECUTIVE_FAILURES"),
			FinishedRetention:      getDuration(v, "POLLING_FINISHED_RETENTION"),
		},
		Idempotency: Idempotency{
			Store: strings.ToLower(getString(v, "IDEMPOTENCY_STORE")),
			TTL:   getDuration(v, "IDEMPOTENCY_TTL"),
			Table: getString(v, "IDEMPOTENCY_TABLE"),
		},
		Cache: Cache{
			Host:     getString(v, "CACHE_HOST"),
			Port:     getString(v, "CACHE_PORT"),
			Password: getString(v, "CACHE_PASSWORD"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString(ConfigFileEnv)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("[config] config file ignored path=%s err=%v", path, err)
		} else {
			log.Printf("[config] config file loaded path=%s", path)
		}
	}
	return v
}

func defaultString(key string) string {
	if d, ok := defaults[key]; ok {
		if s, ok := d.(string); ok {
			return s
		}
	}
	return ""
}

// getString trims the value; a blank value falls back to the default.
func getString(v *viper.Viper, key string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return defaultString(key)
	}
	return value
}

func getInt(v *viper.Viper, key string) int {
	def, _ := defaults[key].(int)
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return def
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[config] invalid integer key=%s value=%q, using %d", key, value, def)
		return def
	}
	return intValue
}

// getDuration accepts Go durations ("3s", "15m") or a bare number of seconds.
func getDuration(v *viper.Viper, key string) time.Duration {
	def, _ := defaults[key].(time.Duration)
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return def
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	log.Printf("[config] invalid duration key=%s value=%q, using %s", key, value, def)
	return def
}

func getBool(v *viper.Viper, key string) bool {
	switch strings.ToLower(strings.TrimSpace(v.GetString(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
