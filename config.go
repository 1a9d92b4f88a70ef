package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/muhammadolammi/resumestatus/internal/review"
	"github.com/muhammadolammi/resumestatus/internal/store"
)

const (
	backendSheets   = "sheets"
	backendXLSX     = "xlsx"
	backendPostgres = "postgres"
	backendMemory   = "memory"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadSheetsConfig reads the spreadsheet identity and service account.
func loadSheetsConfig() (store.SheetsConfig, error) {
	cfg := store.SheetsConfig{
		SpreadsheetID:       os.Getenv("GOOGLE_SHEET_ID"),
		Tab:                 getenv("SHEET_TAB", store.DefaultTab),
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		PrivateKey:          store.NormalizePrivateKey(os.Getenv("GOOGLE_PRIVATE_KEY")),
	}
	if cfg.SpreadsheetID == "" {
		return cfg, fmt.Errorf("empty GOOGLE_SHEET_ID in environment")
	}
	if cfg.ServiceAccountEmail == "" {
		return cfg, fmt.Errorf("empty GOOGLE_SERVICE_ACCOUNT_EMAIL in environment")
	}
	if cfg.PrivateKey == "" {
		return cfg, fmt.Errorf("empty GOOGLE_PRIVATE_KEY in environment")
	}
	return cfg, nil
}

// loadR2Config returns nil when R2 archiving is not configured at all.
func loadR2Config() (*R2Config, error) {
	r2 := R2Config{
		AccountID: os.Getenv("R2_ACCCOUNT_ID"),
		Bucket:    os.Getenv("R2_BUCKET"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
	}
	if r2 == (R2Config{}) {
		return nil, nil
	}
	if r2.AccountID == "" {
		return nil, fmt.Errorf("empty R2_ACCCOUNT_ID in environment")
	}
	if r2.Bucket == "" {
		return nil, fmt.Errorf("empty R2_BUCKET in environment")
	}
	if r2.AccessKey == "" {
		return nil, fmt.Errorf("empty R2_ACCESS_KEY in environment")
	}
	if r2.SecretKey == "" {
		return nil, fmt.Errorf("empty R2_SECRET_KEY in environment")
	}
	return &r2, nil
}

// parseTrustedProxies reads a comma separated list of proxy IPs or CIDRs.
func parseTrustedProxies(raw string) ([]string, error) {
	var proxies []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", p)
			}
		}
		proxies = append(proxies, p)
	}
	return proxies, nil
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "3000"),
		Backend:     getenv("STORE_BACKEND", backendSheets),
		XLSXPath:    os.Getenv("XLSX_PATH"),
		DBURL:       os.Getenv("DB_URL"),
		LinkPrefix:  getenv("RESUME_LINK_PREFIX", review.DefaultLinkPrefix),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
	}

	debug, err := strconv.ParseBool(getenv("DEBUG", "false"))
	if err != nil {
		return cfg, fmt.Errorf("invalid DEBUG value: %w", err)
	}
	cfg.Debug = debug

	limit, err := strconv.Atoi(getenv("RATE_LIMIT_PER_MINUTE", "20"))
	if err != nil || limit < 0 {
		return cfg, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", os.Getenv("RATE_LIMIT_PER_MINUTE"))
	}
	cfg.RateLimitPerMinute = limit

	proxies, err := parseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return cfg, err
	}
	cfg.TrustedProxies = proxies

	switch cfg.Backend {
	case backendSheets:
		sheetsCfg, err := loadSheetsConfig()
		if err != nil {
			return cfg, err
		}
		cfg.Sheets = sheetsCfg
	case backendXLSX:
		if cfg.XLSXPath == "" {
			return cfg, fmt.Errorf("empty XLSX_PATH in environment")
		}
		cfg.Sheets.Tab = getenv("SHEET_TAB", store.DefaultTab)
	case backendPostgres:
		if cfg.DBURL == "" {
			return cfg, fmt.Errorf("empty DB_URL in environment")
		}
	case backendMemory:
	default:
		return cfg, fmt.Errorf("unknown STORE_BACKEND %q (want sheets, xlsx, postgres or memory)", cfg.Backend)
	}

	r2, err := loadR2Config()
	if err != nil {
		return cfg, err
	}
	cfg.R2 = r2

	return cfg, nil
}
