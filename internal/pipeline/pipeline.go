package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"promowatch/internal/crawler"
	"promowatch/internal/extractor"
	"promowatch/internal/logx"
	"promowatch/internal/model"
	"promowatch/internal/observability"
	"promowatch/internal/repository"
	"promowatch/internal/review"
)

type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, p model.Product, flags []string) (int, error)
}

// Pipeline takes one snapshot of a product page: fetch, extract, store,
// review and alert. Stager, Notifier and Metrics are optional.
type Pipeline struct {
	Fetcher  Fetcher
	Stager   *crawler.Stager
	Store    repository.SnapshotStore
	Notifier Notifier
	Metrics  *observability.Metrics
	Now      func() time.Time
}

type Result struct {
	RunID      string
	SnapshotID int64
	Product    model.Product
	Flags      []string
	Skipped    int
	AlertsSent int
	Artifacts  []string
}

func (p *Pipeline) Run(ctx context.Context, url string) (res Result, err error) {
	start := time.Now()
	res.RunID = uuid.NewString()

	defer func() {
		if p.Metrics != nil {
			p.Metrics.ObserveRun(start, err)
		}
		if p.Stager == nil {
			return
		}
		res.Artifacts = p.Stager.Files()
		if err != nil {
			logx.Error().Err(err).Str("run_id", res.RunID).Str("dir", p.Stager.Dir()).Strs("artifacts", res.Artifacts).Msg("run failed, keeping artifacts")
			return
		}
		if cerr := p.Stager.Cleanup(); cerr != nil {
			logx.Warn().Err(cerr).Str("run_id", res.RunID).Msg("failed to remove artifacts")
		}
	}()

	logx.Info().Str("run_id", res.RunID).Str("url", url).Msg("fetching product page")
	html, err := p.Fetcher.FetchPage(ctx, url)
	if err != nil {
		return res, err
	}
	p.stage(res.RunID, "page.html", []byte(html))

	payload, err := extractor.LocatePayload(html)
	if err != nil {
		for _, tag := range extractor.DiagnoseScripts(html) {
			logx.Debug().
				Str("run_id", res.RunID).
				Str("id", tag.ID).
				Str("type", tag.Type).
				Str("crossorigin", tag.CrossOrigin).
				Int("length", tag.Length).
				Msg("json script on page")
		}
		return res, fmt.Errorf("locate payload: %w", err)
	}
	p.stage(res.RunID, "payload.json", []byte(payload))

	asm := extractor.Assembler{
		Now: p.Now,
		OnSkippedPromotion: func(index int, err error) {
			res.Skipped++
			if p.Metrics != nil {
				p.Metrics.SkippedPromotions.Inc()
			}
			logx.Warn().Err(err).Str("run_id", res.RunID).Int("index", index).Msg("skipping promotion")
		},
	}
	product, err := asm.Extract(payload)
	if err != nil {
		return res, fmt.Errorf("extract product: %w", err)
	}
	res.Product = product
	if p.Metrics != nil {
		p.Metrics.Promotions.Add(float64(len(product.Promotions)))
	}

	if b, merr := json.MarshalIndent(product, "", "  "); merr == nil {
		p.stage(res.RunID, "product.json", b)
	}

	res.SnapshotID, err = p.Store.Save(ctx, product)
	if err != nil {
		return res, fmt.Errorf("save snapshot: %w", err)
	}
	logx.Info().
		Str("run_id", res.RunID).
		Int64("snapshot_id", res.SnapshotID).
		Uint64("product_id", product.ProductID).
		Int("promotions", len(product.Promotions)).
		Int("skipped", res.Skipped).
		Msg("snapshot stored")

	res.Flags = review.Promotions(product)
	if p.Metrics != nil {
		p.Metrics.ReviewFlags.Add(float64(len(res.Flags)))
	}
	for _, flag := range res.Flags {
		logx.Info().Str("run_id", res.RunID).Str("flag", flag).Msg("promotion flagged")
	}

	if p.Notifier == nil || len(res.Flags) == 0 {
		return res, nil
	}
	res.AlertsSent, err = p.Notifier.Notify(ctx, product, res.Flags)
	if p.Metrics != nil {
		p.Metrics.AlertsSent.Add(float64(res.AlertsSent))
	}
	if err != nil {
		return res, fmt.Errorf("send alerts: %w", err)
	}
	return res, nil
}

func (p *Pipeline) stage(runID, name string, data []byte) {
	if p.Stager == nil {
		return
	}
	path, err := p.Stager.Stage(name, data)
	if err != nil {
		logx.Warn().Err(err).Str("run_id", runID).Str("artifact", name).Msg("failed to stage artifact")
		return
	}
	logx.Debug().Str("run_id", runID).Str("path", path).Msg("artifact staged")
}
