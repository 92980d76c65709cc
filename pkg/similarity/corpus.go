package similarity

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrCorpusUnavailable = errors.New("case corpus unavailable")

// Source loads case records from some backing store.
type Source interface {
	LoadCases(ctx context.Context) ([]CaseRecord, error)
}

// Corpus holds the current case records. Loads build a new slice and swap it
// in, so readers never see a partial corpus.
type Corpus struct {
	records atomic.Pointer[[]CaseRecord]
}

func NewCorpus() *Corpus {
	c := &Corpus{}
	empty := []CaseRecord{}
	c.records.Store(&empty)
	return c
}

// Load replaces the corpus with a copy of records.
func (c *Corpus) Load(records []CaseRecord) {
	next := make([]CaseRecord, len(records))
	copy(next, records)
	c.records.Store(&next)
}

// LoadFrom reads records from src and swaps them in. On failure the current
// corpus is kept and the error wraps ErrCorpusUnavailable.
func (c *Corpus) LoadFrom(ctx context.Context, src Source) (int, error) {
	if src == nil {
		return 0, fmt.Errorf("%w: no source configured", ErrCorpusUnavailable)
	}
	records, err := src.LoadCases(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	c.Load(records)
	return len(records), nil
}

// Records returns the current snapshot. Callers must not modify it.
func (c *Corpus) Records() []CaseRecord {
	return *c.records.Load()
}

func (c *Corpus) Size() int {
	return len(c.Records())
}
