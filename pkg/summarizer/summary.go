// Package summarizer builds reports of batch conversion results.
package summarizer

import (
	"sort"
	"sync"
	"time"

	"github.com/user/stickerize/pkg/media"
)

// Summary contains the outcome of every file of one invocation.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Kind        media.StickerKind

	Entries []Entry
}

// Entry is the outcome of one input file.
type Entry struct {
	Input  string
	Output string

	ContentKind media.ContentKind
	Container   media.Container
	Plan        media.EncodePlan

	FileSize int
	Oversize bool

	// Err is set when the conversion failed; the other result fields are
	// then zero.
	Err error
}

// Failed reports whether the conversion failed.
func (e Entry) Failed() bool {
	return e.Err != nil
}

// Counts returns the number of converted, oversize and failed entries.
func (s *Summary) Counts() (converted, oversize, failed int) {
	for _, e := range s.Entries {
		switch {
		case e.Failed():
			failed++
		case e.Oversize:
			oversize++
			converted++
		default:
			converted++
		}
	}
	return converted, oversize, failed
}

// Builder collects entries from concurrent conversions.
type Builder struct {
	mu      sync.Mutex
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder(kind media.StickerKind) *Builder {
	return &Builder{
		summary: &Summary{GeneratedAt: time.Now(), Kind: kind},
	}
}

// Add records one entry. Safe for concurrent use.
func (b *Builder) Add(e Entry) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.summary.Entries = append(b.summary.Entries, e)
	return b
}

// Build returns the Summary with entries ordered by input path.
func (b *Builder) Build() *Summary {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := *b.summary
	out.Entries = append([]Entry(nil), b.summary.Entries...)
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Input < out.Entries[j].Input
	})
	return &out
}
