package athena

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// progressReporter logs row-count progress during large table loads without
// flooding the log. A token bucket caps output at one line per second.
type progressReporter struct {
	table   string
	limiter *rate.Limiter
}

func newProgressReporter(table string) *progressReporter {
	return &progressReporter{
		table:   table,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

func (p *progressReporter) Observe(rows int) {
	if p.limiter.AllowN(time.Now(), 1) {
		slog.Debug("load progress", "table", p.table, "rows", rows)
	}
}
