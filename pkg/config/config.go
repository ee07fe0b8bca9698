package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Usuario UsuarioConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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
	Migrate     bool // aplica las migraciones embebidas al arrancar
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	BodyLimitMB int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig dónde se guardan las imágenes subidas.
// Driver "local" usa directorios en disco; "s3" usa un bucket S3/MinIO con los
// directorios como prefijo de clave.
type StorageConfig struct {
	Driver       string
	ComerciosDir string
	AdminDir     string
	S3           S3Config
}

// S3Config credenciales y endpoint del bucket (MinIO o AWS).
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// UsuarioConfig parámetros del controlador de usuarios.
type UsuarioConfig struct {
	// PasswordUserID es el usuario cuyo password cambia PUT /usuarios/password.
	PasswordUserID int64
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "blog-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "blog"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "blog-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			BodyLimitMB: getInt(v, "HTTP_BODY_LIMIT_MB", 10),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Storage: StorageConfig{
			Driver:       getString(v, "STORAGE_DRIVER", "local"),
			ComerciosDir: getString(v, "STORAGE_COMERCIOS_DIR", "descargas"),
			AdminDir:     getString(v, "STORAGE_ADMIN_DIR", "descargasAdmin"),
			S3: S3Config{
				Endpoint:        getString(v, "S3_ENDPOINT", ""),
				Region:          getString(v, "S3_REGION", "us-east-1"),
				Bucket:          getString(v, "S3_BUCKET", ""),
				AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
				UseSSL:          getBool(v, "S3_USE_SSL", false),
			},
		},
		Usuario: UsuarioConfig{
			PasswordUserID: int64(getInt(v, "PASSWORD_USER_ID", 2)),
		},
	}

	if cfg.Storage.Driver != "local" && cfg.Storage.Driver != "s3" {
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %q (local | s3)", cfg.Storage.Driver)
	}
	return cfg, nil
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
