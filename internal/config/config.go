package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dgallion1/docnav/internal/nav"
)

type Config struct {
	Port string

	// Auth for POST /api/rebuild
	DocnavAPIKey string

	// Site layout. Relative paths are resolved against SiteDir.
	SiteDir      string
	SiteConfig   string
	DocsDir      string
	SidebarsPath string // overrides docs.sidebarPath of the site config

	// Resolution
	OnBrokenRefs string // overrides onBrokenLinks of the site config

	// Content scan
	ParseConcurrency int
	TOCMaxLevel      int
	IncludeDrafts    bool

	// Build state
	BuildTTL        time.Duration
	MaxBuilds       int
	RebuildInterval time.Duration // 0 disables polling for changes

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocnavAPIKey: os.Getenv("DOCNAV_API_KEY"),

		SiteDir:      envOr("SITE_DIR", "."),
		SiteConfig:   envOr("SITE_CONFIG", "site.yaml"),
		DocsDir:      envOr("DOCS_DIR", "docs"),
		SidebarsPath: os.Getenv("SIDEBARS_PATH"),

		OnBrokenRefs: os.Getenv("ON_BROKEN_REFS"),

		ParseConcurrency: envInt("PARSE_CONCURRENCY", 8),
		TOCMaxLevel:      envInt("TOC_MAX_LEVEL", 3),
		IncludeDrafts:    envBool("INCLUDE_DRAFTS", false),

		BuildTTL:        envDuration("BUILD_TTL", 24*time.Hour),
		MaxBuilds:       envInt("MAX_BUILDS", 50),
		RebuildInterval: envDuration("REBUILD_INTERVAL", 0),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.ParseConcurrency <= 0 {
		cfg.ParseConcurrency = 8
	}
	if cfg.TOCMaxLevel <= 0 {
		cfg.TOCMaxLevel = 3
	}
	if cfg.BuildTTL <= 0 {
		cfg.BuildTTL = 24 * time.Hour
	}
	if cfg.MaxBuilds <= 0 {
		cfg.MaxBuilds = 50
	}
	if cfg.RebuildInterval < 0 {
		cfg.RebuildInterval = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocnavAPIKey == "" {
		return fmt.Errorf("DOCNAV_API_KEY is required")
	}
	if _, err := nav.ParseStrictness(c.OnBrokenRefs); err != nil {
		return fmt.Errorf("ON_BROKEN_REFS: %w", err)
	}
	return nil
}

// Path resolves p against SiteDir unless it is absolute.
func (c Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.SiteDir, p)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
