package classify

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/your-org/fitcheck/internal/models"
	"github.com/your-org/fitcheck/internal/observability"
)

// Chain tries capability-equivalent providers in priority order and returns
// the first available verdict. Providers run strictly one after another.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Classify returns ok=false only when every provider was unavailable.
func (c *Chain) Classify(ctx context.Context, in Input) (models.Verdict, bool) {
	for _, p := range c.providers {
		start := time.Now()
		v, ok := safeClassify(ctx, p, in)
		observability.StageDuration.WithLabelValues("classify_" + p.Name()).Observe(time.Since(start).Seconds())

		if !ok {
			observability.ClassifierUnavailable.WithLabelValues(p.Name()).Inc()
			continue
		}

		observability.ClassifierVerdicts.WithLabelValues(string(v.Source), strconv.FormatBool(v.IsOutfit)).Inc()
		return v, true
	}
	return models.Verdict{}, false
}

// Names lists the providers in priority order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// safeClassify turns a provider panic into "unavailable".
func safeClassify(ctx context.Context, p Provider, in Input) (v models.Verdict, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("classifier provider panicked", "provider", p.Name(), "panic", r)
			v, ok = models.Verdict{}, false
		}
	}()
	return p.Classify(ctx, in)
}
