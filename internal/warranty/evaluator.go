// Package warranty decides whether a service request is still covered by the
// one-year warranty that starts at its invoice date.
package warranty

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"sertec/pkg/dates"
)

const (
	// DefaultCacheSize bounds the memoization cache.
	DefaultCacheSize = 500

	// coverageYears is the warranty length added to the invoice date.
	coverageYears = 1

	// admissionYears limits caching to invoices newer than now minus this many
	// years, so stale historical rows do not occupy cache slots.
	admissionYears = 2

	cacheName = "warranty"
)

// Metrics receives cache events. A nil Metrics disables reporting.
type Metrics interface {
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
	RecordCacheRejected(cache string)
}

// Evaluator answers warranty questions and memoizes them by the exact invoice
// date string it was given. It is safe for concurrent use.
type Evaluator struct {
	loc     *time.Location
	now     func() time.Time
	cache   *lru.Cache[string, bool]
	metrics Metrics
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock replaces time.Now as the source of "now".
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// WithLocation sets the location invoice dates without an offset are read in.
func WithLocation(loc *time.Location) Option {
	return func(e *Evaluator) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithMetrics reports cache events to m.
func WithMetrics(m Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// New creates an Evaluator whose cache holds at most size entries. A
// non-positive size uses DefaultCacheSize.
func New(size int, opts ...Option) (*Evaluator, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("create warranty cache: %w", err)
	}
	e := &Evaluator{
		loc:   time.Local,
		now:   time.Now,
		cache: cache,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// IsActive reports whether the warranty for invoiceDate is still running at
// the evaluator's current time.
func (e *Evaluator) IsActive(invoiceDate string) bool {
	return e.IsActiveAt(invoiceDate, e.now())
}

// IsActiveRef is IsActive for nullable fields; nil is never active.
func (e *Evaluator) IsActiveRef(invoiceDate *string) bool {
	if invoiceDate == nil {
		return false
	}
	return e.IsActive(*invoiceDate)
}

// IsActiveAt reports whether now is before invoiceDate plus one year.
//
// Empty and unparseable dates are never active. A cached answer for the same
// input string is returned without recomputing; fresh answers are cached only
// when the invoice date is within the last two years of now.
func (e *Evaluator) IsActiveAt(invoiceDate string, now time.Time) bool {
	if invoiceDate == "" {
		return false
	}
	if active, ok := e.cache.Get(invoiceDate); ok {
		e.recordHit()
		return active
	}
	e.recordMiss()

	issued, ok := dates.ParseFlexibleIn(invoiceDate, e.loc)
	if !ok {
		return false
	}

	active := now.Before(expiry(issued))
	if issued.After(now.AddDate(-admissionYears, 0, 0)) {
		e.cache.Add(invoiceDate, active)
	} else {
		e.recordRejected()
	}
	return active
}

// Expiry returns the instant the warranty for invoiceDate ends. Feb 29 plus
// one year normalizes to Mar 1.
func (e *Evaluator) Expiry(invoiceDate string) (time.Time, bool) {
	issued, ok := dates.ParseFlexibleIn(invoiceDate, e.loc)
	if !ok {
		return time.Time{}, false
	}
	return expiry(issued), true
}

// Now returns the evaluator's current time.
func (e *Evaluator) Now() time.Time {
	return e.now()
}

// Len returns the number of memoized answers.
func (e *Evaluator) Len() int {
	return e.cache.Len()
}

func expiry(issued time.Time) time.Time {
	return issued.AddDate(coverageYears, 0, 0)
}

func (e *Evaluator) recordHit() {
	if e.metrics != nil {
		e.metrics.RecordCacheHit(cacheName)
	}
}

func (e *Evaluator) recordMiss() {
	if e.metrics != nil {
		e.metrics.RecordCacheMiss(cacheName)
	}
}

func (e *Evaluator) recordRejected() {
	if e.metrics != nil {
		e.metrics.RecordCacheRejected(cacheName)
	}
}
