package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"architect-report/internal/leanix"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	LeanIX      leanix.Config
	DataPath    string
	LogDir      string
	CacheDir    string
	OpenBrowser bool
	Report      ReportSettings
}

// Load loads the configuration from .env files, environment variables and the
// optional TOML report file. An empty reportFile means <DATA_PATH>/report.toml.
func Load(reportFile string) (*AppConfig, error) {
	exeDir := loadDotEnv()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = exeDir
	}

	logDir := filepath.Join(dataPath, "logs")
	cacheDir := filepath.Join(dataPath, "cache")

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
	}

	if reportFile == "" {
		reportFile = filepath.Join(dataPath, "report.toml")
	}
	settings, err := LoadReportFile(reportFile)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		LeanIX: leanix.Config{
			BaseURL:      getEnv("LEANIX_URL", ""),
			Workspace:    getEnv("LEANIX_WORKSPACE", ""),
			APIToken:     getEnv("LEANIX_API_TOKEN", ""),
			AccessToken:  getEnv("LEANIX_ACCESS_TOKEN", ""),
			FixturePath:  getEnv("LEANIX_FIXTURE", ""),
			Timeout:      getEnvSeconds("LEANIX_TIMEOUT_SECONDS", 90),
			MaxRetryTime: getEnvSeconds("LEANIX_MAX_RETRY_SECONDS", 30),
			CacheTTL:     getEnvSeconds("LEANIX_CACHE_TTL_SECONDS", 60),
			PageSize:     getEnvInt("LEANIX_PAGE_SIZE", leanix.DefaultPageSize),
		},
		DataPath:    dataPath,
		LogDir:      logDir,
		CacheDir:    cacheDir,
		OpenBrowser: getEnvBool("OPEN_BROWSER", true),
		Report:      settings,
	}

	if cfg.LeanIX.BaseURL == "" && cfg.LeanIX.FixturePath == "" {
		log.Warn().Msg("LEANIX_URL is not set; queries will fail unless LEANIX_FIXTURE is configured")
	}

	return cfg, nil
}

// loadDotEnv applies the .env next to the binary, then the one in the working
// directory. Variables already set win. It returns the binary directory or ".".
func loadDotEnv() string {
	exeDir := "."
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded .env from binary directory")
		}
	}
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded .env from working directory")
	}
	return exeDir
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
