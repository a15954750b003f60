package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceCSV   = "csv"
	SourceMongo = "mongo"
)

var (
	ErrUnknownSource   = errors.New("config: CATALOG_SOURCE must be csv or mongo")
	ErrMissingDataPath = errors.New("config: missing DATA_PATH")
	ErrMissingMatrix   = errors.New("config: missing MATRIX_PATH")
	ErrMissingMongoURI = errors.New("config: missing MONGODB_URI environment variable")
)

// Config agrupa todo lo que el proceso necesita para arrancar.
type Config struct {
	HTTPAddr        string
	GinMode         string
	CORSOrigins     []string
	StaticDir       string
	ShutdownTimeout time.Duration

	CatalogSource string
	DataPath      string
	MatrixPath    string

	MongoURI           string
	MongoDBName        string
	MongoCollection    string
	MongoRetryInterval time.Duration
	MongoMaxRetries    int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	TMDB TMDB
}

// TMDB is passed through to the front-end for poster lookups.
type TMDB struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	ImgBase string `json:"img_base"`
}

// Load lee un .env opcional y luego las variables de entorno.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] No se pudo leer .env: %v", err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment without validating it.
func FromEnv() *Config {
	return &Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		GinMode:         getenv("GIN_MODE", "release"),
		CORSOrigins:     getlist("CORS_ORIGINS", []string{"*"}),
		StaticDir:       os.Getenv("STATIC_DIR"),
		ShutdownTimeout: getduration("SHUTDOWN_TIMEOUT", 10*time.Second),

		CatalogSource: strings.ToLower(getenv("CATALOG_SOURCE", SourceCSV)),
		DataPath:      getenv("DATA_PATH", "Data/data.csv"),
		MatrixPath:    getenv("MATRIX_PATH", "Model/cosine_sim.npy"),

		MongoURI:           strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDBName:        getenv("MONGO_DB_NAME", "goflix"),
		MongoCollection:    getenv("MONGO_COLLECTION", "catalog"),
		MongoRetryInterval: getduration("MONGO_RETRY_INTERVAL", 15*time.Second),
		MongoMaxRetries:    getint("MONGO_MAX_RETRIES", 0),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		CacheTTL:      getduration("CACHE_TTL", 10*time.Minute),

		TMDB: TMDB{
			APIKey:  os.Getenv("TMDB_API_KEY"),
			BaseURL: os.Getenv("TMDB_BASE_URL"),
			ImgBase: os.Getenv("TMDB_IMG_BASE"),
		},
	}
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceCSV:
		if c.DataPath == "" {
			return ErrMissingDataPath
		}
	case SourceMongo:
		if c.MongoURI == "" {
			return ErrMissingMongoURI
		}
	default:
		return fmt.Errorf("%w (got %q)", ErrUnknownSource, c.CatalogSource)
	}
	if c.MatrixPath == "" {
		return ErrMissingMatrix
	}
	return nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool { return c.RedisAddr != "" }

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[CONFIG] Valor inválido para %s (%s), usando %d", k, v, def)
		return def
	}
	return n
}

func getduration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[CONFIG] Intervalo inválido para %s (%s), usando %s", k, v, def)
		return def
	}
	return d
}

func getlist(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
