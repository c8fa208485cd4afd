package db

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Query keys pgx understands; anything else (e.g. Django's ?schema=) is dropped.
var supportedPGQueryKeys = map[string]struct{}{
	"application_name":     {},
	"channel_binding":      {},
	"client_encoding":      {},
	"connect_timeout":      {},
	"host":                 {},
	"keepalives":           {},
	"keepalives_idle":      {},
	"options":              {},
	"passfile":             {},
	"pool_max_conns":       {},
	"service":              {},
	"sslcert":              {},
	"sslkey":               {},
	"sslmode":              {},
	"sslrootcert":          {},
	"target_session_attrs": {},
}

var schemeAliases = []string{
	"postgresql+psycopg://",
	"postgresql+psycopg2://",
	"django.db.backends.postgresql://",
	"postgresql://",
}

func Connect(ctx context.Context, rawURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDatabaseURL(rawURL))
	if err != nil {
		return nil, err
	}
	if cfg.MaxConnIdleTime == 0 || cfg.MaxConnIdleTime > 5*time.Minute {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

func normalizeDatabaseURL(rawURL string) string {
	normalized := strings.TrimSpace(rawURL)
	for _, alias := range schemeAliases {
		if strings.HasPrefix(normalized, alias) {
			normalized = "postgres://" + strings.TrimPrefix(normalized, alias)
			break
		}
	}

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Scheme != "postgres" {
		return normalized
	}

	filtered := make(url.Values)
	for key, values := range parsed.Query() {
		if _, ok := supportedPGQueryKeys[key]; !ok {
			continue
		}
		for _, v := range values {
			filtered.Add(key, v)
		}
	}
	parsed.RawQuery = filtered.Encode()
	return parsed.String()
}
