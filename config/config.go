package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SheetURL   string
	ListenAddr string
	TgToken    string
	Title      string

	RefreshInterval time.Duration
	FetchTimeout    time.Duration

	// Classification and chart policy. These are heuristics, not
	// requirements, so all of them can be overridden from the environment.
	NumericDistinctThreshold int // more distinct numeric values than this = continuous
	MaxBarCategories         int // bar chart shows top N, rest goes to "Other"
	HeatmapCardinalityCap    int // skip heatmap pairs above this cardinality
	HistogramBins            int
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration, loading .env once.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment")
		}

		config = &Config{
			SheetURL:   os.Getenv("SHEET_URL"),
			ListenAddr: getEnvOrDefault("LISTEN_ADDR", ":8005"),
			TgToken:    os.Getenv("TG_TOKEN"),
			Title:      getEnvOrDefault("DASHBOARD_TITLE", "Survey Dashboard"),

			RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 10*time.Second),
			FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

			NumericDistinctThreshold: getEnvInt("NUMERIC_DISTINCT_THRESHOLD", 10),
			MaxBarCategories:         getEnvInt("MAX_BAR_CATEGORIES", 20),
			HeatmapCardinalityCap:    getEnvInt("HEATMAP_CARDINALITY_CAP", 15),
			HistogramBins:            getEnvInt("HISTOGRAM_BINS", 10),
		}
	})
	return config
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}
