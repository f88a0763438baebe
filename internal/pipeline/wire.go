package pipeline

import (
	"context"
	"fmt"
	"strings"

	"promowatch/internal/config"
	"promowatch/internal/crawler"
	"promowatch/internal/db"
	"promowatch/internal/logx"
	"promowatch/internal/notify"
	"promowatch/internal/observability"
	"promowatch/internal/repository"
)

// OpenStore picks the snapshot store for dsn. Postgres URLs use the pgx pool
// unless driver is "pq".
func OpenStore(ctx context.Context, dsn, driver string) (repository.SnapshotStore, func(), error) {
	dsn, err := db.ResolvePath(dsn)
	if err != nil {
		return nil, nil, err
	}

	if db.IsPostgres(dsn) && !strings.EqualFold(driver, "pq") {
		pool, err := db.NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.EnsureSchemaPool(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return &repository.PgxRepository{DB: pool}, pool.Close, nil
	}

	conn, dialect, err := db.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return &repository.SQLRepository{DB: conn, Dialect: dialect}, func() { conn.Close() }, nil
}

// Build wires a Pipeline from cfg. The returned func releases its connections.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	client, err := crawler.NewClient(crawler.ClientOptions{Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, nil, err
	}

	stager, err := crawler.NewStager(cfg.StagingDir, cfg.StagingPrefix, cfg.KeepArtifacts)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := OpenStore(ctx, cfg.DatabaseURL, cfg.PGDriver)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	p := &Pipeline{
		Fetcher: client,
		Stager:  stager,
		Store:   store,
		Metrics: observability.NewMetrics(),
	}

	if !cfg.MailEnabled() {
		logx.Info().Msg("GMAIL_ADDRESS/GMAIL_PASSWORD not set, alerts are only logged")
		return p, closeAll, nil
	}

	n := &notify.Notifier{
		Sender:     notify.NewMailer(cfg),
		Summarizer: notify.NewSummarizer(cfg.OpenAIKey, cfg.OpenAIModel),
		URL:        cfg.ProductURL,
	}
	if cfg.RedisURL != "" {
		rdb, err := notify.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logx.Warn().Err(err).Msg("redis unavailable, alerts will not be deduplicated")
		} else {
			n.Alerts = &notify.AlertLog{Client: rdb, TTL: cfg.AlertTTL}
			closers = append(closers, func() { rdb.Close() })
		}
	}
	p.Notifier = n
	return p, closeAll, nil
}
