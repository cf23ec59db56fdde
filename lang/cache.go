package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// documentCache stores parsed documents keyed by the xxh3 hash of their
// source. Parsed documents are never modified, so they may be shared by
// any number of compilations.
var documentCache sync.Map

// entry is the cache slot of a single source.
type entry struct {
	once sync.Once
	doc  *Document
}

// ParseReader reads all of r and parses it as a document. The result is
// cached by content.
func (e *Env) ParseReader(ctx context.Context, r io.Reader) (*Document, error) {
	// Read ahead asynchronously.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	e.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return e.ParseString(ctx, string(data)), nil
}

// ParseString parses source as a document, reusing a cached parse of
// identical source if one exists.
func (e *Env) ParseString(ctx context.Context, source string) *Document {
	hash := xxh3.HashString(source)

	value, hit := documentCache.LoadOrStore(hash, new(entry))

	slot, _ := value.(*entry)

	e.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit),
	)

	slot.once.Do(func() {
		slot.doc = ParseDocument(source)
	})

	return slot.doc
}

// ClearCache removes all cached documents.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	documentCache.Range(func(key, _ any) bool {
		documentCache.Delete(key)

		return true
	})
}
