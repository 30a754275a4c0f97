package cli

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/grade/pkg/grade"
)

// Config carries the environment-driven settings of the command. Values
// come from the process environment, optionally seeded by a .env file in
// the working directory.
type Config struct {
	LogLevel     slog.Level // GRADE_LOG_LEVEL: debug, info, warn, error
	Parallel     bool       // GRADE_PARALLEL
	JPEGQuality  int        // GRADE_JPEG_QUALITY, 1..100
	Preview      bool       // GRADE_PREVIEW
	PreviewDebug bool       // PREVIEW_DEBUG
}

// DefaultJPEGQuality is used when GRADE_JPEG_QUALITY is unset or invalid.
const DefaultJPEGQuality = 92

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() Config {
	// .env is optional
	_ = godotenv.Load()

	cfg := Config{
		LogLevel:    slog.LevelWarn,
		Parallel:    true,
		JPEGQuality: DefaultJPEGQuality,
		Preview:     true,
	}
	if v := os.Getenv("GRADE_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}
	cfg.Parallel = envBool("GRADE_PARALLEL", cfg.Parallel)
	cfg.Preview = envBool("GRADE_PREVIEW", cfg.Preview)
	cfg.PreviewDebug = envBool("PREVIEW_DEBUG", false)
	if v := os.Getenv("GRADE_JPEG_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil && q >= 1 && q <= 100 {
			cfg.JPEGQuality = q
		}
	}
	return cfg
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	}
	return def
}

// apply installs the logger and preview debugging the config asks for.
func (c Config) apply() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel})
	grade.SetLogger(slog.New(h))
	previewDebug = c.PreviewDebug
}
