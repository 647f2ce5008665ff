package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

// Drivers soportados.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
	DriverMinIO    = "minio"
	DriverS3       = "s3"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DocStore DocStoreConfig
	DB       DBConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Docs     DocsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host          string
	Port          int
	MaxUploadSize string // formato humano: "10MB", "512KiB"

	maxUploadBytes int64
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaxUploadBytes límite del cuerpo de la petición en bytes (válido después de Validate).
func (c HTTPConfig) MaxUploadBytes() int64 {
	return c.maxUploadBytes
}

// DocStoreConfig selecciona el almacén de documentos: postgres, redis o memory.
type DocStoreConfig struct {
	Driver string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	AutoSchema  bool // crear tablas si no existen al arrancar
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

// RedisConfig configuración de Redis como almacén de documentos.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prefijo de todas las claves
}

// StorageConfig configuración del almacenamiento de objetos (imágenes).
type StorageConfig struct {
	Driver        string // minio, s3, memory
	Bucket        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	UseSSL        bool
	UsePathStyle  bool
	PublicACL     bool
	PublicBaseURL string
	Prefix        string // carpeta raíz de las claves dentro del bucket
}

// DocsConfig Swagger UI.
type DocsConfig struct {
	Enabled bool
	File    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	storageDriver := strings.ToLower(getString(v, "STORAGE_DRIVER", DriverMinIO))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "catalog-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:          getInt(v, "HTTP_PORT", 8080),
			MaxUploadSize: getString(v, "HTTP_MAX_UPLOAD_SIZE", "10MB"),
		},
		DocStore: DocStoreConfig{
			Driver: strings.ToLower(getString(v, "DOCSTORE_DRIVER", DriverPostgres)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalog"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 25)),
			AutoSchema:  getBool(v, "DB_AUTO_SCHEMA", true),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			Prefix:   getString(v, "REDIS_PREFIX", "catalog"),
		},
		Storage: StorageConfig{
			Driver:        storageDriver,
			Bucket:        getString(v, "STORAGE_BUCKET", "catalog-images"),
			Endpoint:      getString(v, "STORAGE_ENDPOINT", defaultStorageEndpoint(storageDriver)),
			AccessKey:     getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey:     getString(v, "STORAGE_SECRET_KEY", ""),
			Region:        getString(v, "STORAGE_REGION", "us-east-1"),
			UseSSL:        getBool(v, "STORAGE_USE_SSL", false),
			UsePathStyle:  getBool(v, "STORAGE_USE_PATH_STYLE", true),
			PublicACL:     getBool(v, "STORAGE_PUBLIC_ACL", true),
			PublicBaseURL: getString(v, "STORAGE_PUBLIC_BASE_URL", ""),
			Prefix:        getString(v, "STORAGE_PREFIX", "uploads"),
		},
		Docs: DocsConfig{
			Enabled: getBool(v, "DOCS_ENABLED", false),
			File:    getString(v, "DOCS_FILE", "./docs/swagger.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza drivers desconocidos y tamaños mal formados.
func (c *Config) Validate() error {
	switch c.DocStore.Driver {
	case DriverPostgres, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("DOCSTORE_DRIVER inválido: %q", c.DocStore.Driver)
	}
	switch c.Storage.Driver {
	case DriverMinIO, DriverS3, DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER inválido: %q", c.Storage.Driver)
	}
	if c.Storage.Driver != DriverMemory && c.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET requerido para el driver %s", c.Storage.Driver)
	}
	size, err := units.FromHumanSize(c.HTTP.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("HTTP_MAX_UPLOAD_SIZE inválido: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("HTTP_MAX_UPLOAD_SIZE debe ser positivo")
	}
	c.HTTP.maxUploadBytes = size
	return nil
}

// defaultStorageEndpoint solo MinIO tiene endpoint local por defecto; con s3 vacío usa el de AWS.
func defaultStorageEndpoint(driver string) string {
	if driver == DriverMinIO {
		return "localhost:9000"
	}
	return ""
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
