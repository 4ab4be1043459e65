package search

import "github.com/google/uuid"

// Source is the pull interface BuildFrom consumes: a possibly lazy,
// possibly-infinite sequence of articles. Next returns (record, true)
// for each available article and (zero, false) once exhausted. The
// index never cares whether the implementation is backed by a slice,
// a channel, or a network cursor — it only ever calls Next.
type Source interface {
	Next() (ArticleRecord, bool)
}

// SliceSource adapts a plain slice of ArticleRecords to Source, for
// callers that already hold the whole corpus in memory.
type SliceSource struct {
	records []ArticleRecord
	pos     int
}

// NewSliceSource wraps records as a Source.
func NewSliceSource(records []ArticleRecord) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record in the slice.
func (s *SliceSource) Next() (ArticleRecord, bool) {
	if s.pos >= len(s.records) {
		return ArticleRecord{}, false
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, true
}

// ProgressFunc is invoked every buildProgressInterval documents during
// BuildFrom, on the index's own goroutine (never concurrently with
// another index operation).
type ProgressFunc func(processed int)

// newBuildID mints a fresh identifier for one BuildFrom run, used only
// to tag log lines — it carries no meaning to callers.
func newBuildID() string {
	return uuid.New().String()
}
