package notify

import (
	"context"
	"errors"

	"promowatch/internal/logx"
	"promowatch/internal/model"
)

// Notifier turns review flags into alert emails, one per flag.
type Notifier struct {
	Sender     Sender
	Alerts     *AlertLog
	Summarizer *Summarizer
	URL        string
}

// Notify sends every flag not already in the alert log and returns how
// many messages went out.
func (n *Notifier) Notify(ctx context.Context, p model.Product, flags []string) (int, error) {
	if len(flags) == 0 {
		return 0, nil
	}

	var summary string
	if n.Summarizer != nil {
		s, err := n.Summarizer.Summarize(ctx, p, flags)
		if err != nil {
			logx.Warn().Err(err).Uint64("product_id", p.ProductID).Msg("summary unavailable, sending alerts without it")
		} else {
			summary = s
		}
	}

	var errs []error
	sent := 0
	for _, flag := range flags {
		fresh, err := n.Alerts.Claim(ctx, p.ProductID, flag)
		if err != nil {
			// without the log we cannot tell, so send anyway
			logx.Warn().Err(err).Str("flag", flag).Msg("alert log unavailable")
			fresh = true
		}
		if !fresh {
			logx.Debug().Str("flag", flag).Uint64("product_id", p.ProductID).Msg("alert already sent")
			continue
		}

		if err := n.Sender.Send(ctx, Subject, Body(flag, n.URL, p, summary)); err != nil {
			if rerr := n.Alerts.Release(ctx, p.ProductID, flag); rerr != nil {
				logx.Warn().Err(rerr).Str("flag", flag).Msg("failed to release alert")
			}
			errs = append(errs, err)
			continue
		}
		sent++
		logx.Info().Str("flag", flag).Uint64("product_id", p.ProductID).Msg("alert sent")
	}
	return sent, errors.Join(errs...)
}
