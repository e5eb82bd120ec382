package dates

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Sentinels returned by FormatForHumans.
const (
	NotAvailable = "No disponible"
	InvalidDate  = "Fecha inválida"
)

// HumanLayout is the es-CL date and time convention ("25-04-2023, 14:30:00").
const HumanLayout = "02-01-2006, 15:04:05"

// DefaultCacheSize bounds the display cache.
const DefaultCacheSize = 500

// displayCacheName labels the display cache in metrics.
const displayCacheName = "date_display"

// CacheMetrics receives cache hit and miss events. *metrics.Metrics from the
// platform package satisfies it.
type CacheMetrics interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
}

// Formatter renders dates for humans in a fixed location and memoizes the
// output by input string in a bounded LRU cache. It is safe for concurrent use.
type Formatter struct {
	loc     *time.Location
	cache   *lru.Cache[string, string]
	metrics CacheMetrics
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithMetrics reports display cache hits and misses to m.
func WithMetrics(m CacheMetrics) FormatterOption {
	return func(f *Formatter) {
		f.metrics = m
	}
}

// NewFormatter builds a Formatter for loc with an LRU display cache of size
// entries. A nil loc means time.Local; a non-positive size uses
// DefaultCacheSize.
func NewFormatter(loc *time.Location, size int, opts ...FormatterOption) (*Formatter, error) {
	if loc == nil {
		loc = time.Local
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create display cache: %w", err)
	}
	f := &Formatter{loc: loc, cache: cache}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Location returns the location dates are interpreted in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Parse is ParseFlexibleIn bound to the formatter's location.
func (f *Formatter) Parse(s string) (time.Time, bool) {
	return ParseFlexibleIn(s, f.loc)
}

// FormatForHumans renders s with HumanLayout. Empty input yields NotAvailable
// and unparseable input yields InvalidDate.
func (f *Formatter) FormatForHumans(s string) string {
	if s == "" {
		return NotAvailable
	}
	if cached, ok := f.cache.Get(s); ok {
		f.recordHit()
		return cached
	}
	f.recordMiss()

	out := InvalidDate
	if t, ok := f.Parse(s); ok {
		out = t.In(f.loc).Format(HumanLayout)
	}
	f.cache.Add(s, out)
	return out
}

// Len returns the number of cached display strings.
func (f *Formatter) Len() int {
	return f.cache.Len()
}

func (f *Formatter) recordHit() {
	if f.metrics != nil {
		f.metrics.RecordCacheHit(displayCacheName)
	}
}

func (f *Formatter) recordMiss() {
	if f.metrics != nil {
		f.metrics.RecordCacheMiss(displayCacheName)
	}
}
