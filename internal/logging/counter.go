package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Counter is a handler that counts records at or above a level and discards
// them. Handlers derived through WithAttrs or WithGroup share the count.
type Counter struct {
	min   slog.Level
	count *atomic.Int64
}

// NewCounter returns a counter of records at min or above.
func NewCounter(min slog.Level) *Counter {
	return &Counter{min: min, count: new(atomic.Int64)}
}

// Count reports the records handled so far.
func (c *Counter) Count() int {
	return int(c.count.Load())
}

func (c *Counter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.min
}

func (c *Counter) Handle(context.Context, slog.Record) error {
	c.count.Add(1)
	return nil
}

func (c *Counter) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c *Counter) WithGroup(string) slog.Handler { return c }
