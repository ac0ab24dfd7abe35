package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Ledger   LedgerConfig
	DB       DBConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
	JWT      JWTConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host      string
	Port      int
	BodyLimit int // bytes; las planillas subidas pueden ser grandes
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers soportados para el ledger de escaneo.
const (
	LedgerDriverSQLite   = "sqlite"
	LedgerDriverPostgres = "postgres"
	LedgerDriverMemory   = "memory"
)

// LedgerConfig selecciona dónde se persisten los conteos escaneados.
type LedgerConfig struct {
	Driver     string // sqlite | postgres | memory
	SQLitePath string
}

// DBConfig configuración de PostgreSQL (solo si Ledger.Driver = postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// StorageConfig rutas de trabajo en disco.
type StorageConfig struct {
	InputDir  string // destino crudo de las subidas
	OutputDir string // artefactos por fecha: output/<fecha>/...
	TempDir   string // lotes preparados: temp/<fecha>/...
	PublicDir string // UI del escáner
}

// Modos de ejecución del pipeline.
const (
	PipelineModeInProcess = "inprocess"
	PipelineModeProcess   = "process"
)

// PipelineConfig controla cómo se ejecutan las etapas de generación de reportes.
type PipelineConfig struct {
	Mode             string        // inprocess | process
	RunnerPath       string        // binario de cmd/pipeline (modo process)
	Timeout          time.Duration // límite para el proceso externo; 0 = sin límite
	StageTimeout     time.Duration // límite por etapa en proceso; 0 = sin límite
	PlanningEncoding string        // utf-8 | windows-1250 | iso-8859-2
}

// JWTConfig configuración de JWT para operadores (subida de planillas).
// Secret vacío deshabilita la protección de /upload.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, LEDGER_DRIVER, OUTPUT_DIR, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "despacho-scan"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:      getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:      getInt(v, "HTTP_PORT", 3000),
			BodyLimit: getInt(v, "HTTP_BODY_LIMIT", 32*1024*1024),
		},
		Ledger: LedgerConfig{
			Driver:     strings.ToLower(getString(v, "LEDGER_DRIVER", LedgerDriverSQLite)),
			SQLitePath: getString(v, "LEDGER_SQLITE_PATH", "data/ledger.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "despacho"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			InputDir:  getString(v, "INPUT_DIR", "input"),
			OutputDir: getString(v, "OUTPUT_DIR", "output"),
			TempDir:   getString(v, "TEMP_DIR", "temp"),
			PublicDir: getString(v, "PUBLIC_DIR", "public"),
		},
		Pipeline: PipelineConfig{
			Mode:             strings.ToLower(getString(v, "PIPELINE_MODE", PipelineModeInProcess)),
			RunnerPath:       getString(v, "PIPELINE_RUNNER", "./bin/pipeline"),
			Timeout:          getDuration(v, "PIPELINE_TIMEOUT", 0),
			StageTimeout:     getDuration(v, "PIPELINE_STAGE_TIMEOUT", 0),
			PlanningEncoding: strings.ToLower(getString(v, "PLANNING_ENCODING", "utf-8")),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "despacho-scan"),
		},
	}

	switch cfg.Ledger.Driver {
	case LedgerDriverSQLite, LedgerDriverPostgres, LedgerDriverMemory:
	default:
		return nil, fmt.Errorf("LEDGER_DRIVER desconocido: %q (usar sqlite|postgres|memory)", cfg.Ledger.Driver)
	}
	switch cfg.Pipeline.Mode {
	case PipelineModeInProcess, PipelineModeProcess:
	default:
		return nil, fmt.Errorf("PIPELINE_MODE desconocido: %q (usar inprocess|process)", cfg.Pipeline.Mode)
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

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		return v.GetDuration(key)
	}
	return def
}
