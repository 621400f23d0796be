package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
	Stock StockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host             string
	Port             int
	CORSAllowOrigins string // lista separada por comas; "*" permite cualquiera
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selecciona el backend de documentos.
type StoreConfig struct {
	Driver string // postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL     string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnectAttempts int
	ConnectBackoff  time.Duration // espera inicial entre intentos; se duplica en cada reintento
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig conexión opcional a Redis para claves de idempotencia. Addr vacío = en memoria.
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IdempotencyTTL time.Duration
}

// StockConfig nombres de modelo por variante y umbral de stock bajo.
type StockConfig struct {
	ModelV1           string
	ModelV9           string
	LowStockThreshold int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, STOCK_MODEL_V1, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "linea-stock-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:             getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:             getInt(v, "HTTP_PORT", 8080),
			CORSAllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
		},
		DB: DBConfig{
			DatabaseURL:     getString(v, "DATABASE_URL", ""),
			Host:            getString(v, "DB_HOST", "localhost"),
			Port:            getInt(v, "DB_PORT", 5432),
			User:            getString(v, "DB_USER", "postgres"),
			Password:        getString(v, "DB_PASSWORD", ""),
			DBName:          getString(v, "DB_NAME", "linea_stock"),
			SSLMode:         getString(v, "DB_SSLMODE", "disable"),
			ConnectAttempts: getInt(v, "DB_CONNECT_ATTEMPTS", 5),
			ConnectBackoff:  time.Duration(getInt(v, "DB_CONNECT_BACKOFF_MS", 500)) * time.Millisecond,
		},
		Redis: RedisConfig{
			Addr:           getString(v, "REDIS_ADDR", ""),
			Password:       getString(v, "REDIS_PASSWORD", ""),
			DB:             getInt(v, "REDIS_DB", 0),
			IdempotencyTTL: time.Duration(getInt(v, "IDEMPOTENCY_TTL_MINUTES", 1440)) * time.Minute,
		},
		Stock: StockConfig{
			ModelV1:           getString(v, "STOCK_MODEL_V1", "V1"),
			ModelV9:           getString(v, "STOCK_MODEL_V9", "V9"),
			LowStockThreshold: getInt(v, "STOCK_LOW_THRESHOLD", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.Store.Driver)
	}
	if c.Stock.ModelV1 == "" || c.Stock.ModelV9 == "" {
		return fmt.Errorf("STOCK_MODEL_V1 y STOCK_MODEL_V9 son requeridos")
	}
	if c.Stock.ModelV1 == c.Stock.ModelV9 {
		return fmt.Errorf("STOCK_MODEL_V1 y STOCK_MODEL_V9 deben ser distintos")
	}
	if c.DB.ConnectAttempts < 1 {
		c.DB.ConnectAttempts = 1
	}
	return nil
}

// AllowOrigins normaliza la lista de orígenes CORS para Fiber.
func (c HTTPConfig) AllowOrigins() string {
	parts := strings.Split(c.CORSAllowOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
