package validate

import (
	"context"

	"github.com/matsen/refcheck/internal/reference"
	"github.com/matsen/refcheck/internal/storage"
)

// CachedLookup consults a SQLite cache before the underlying lookup.
// Cached empty results are honored, so a title known to have no
// candidates never hits the network twice.
type CachedLookup struct {
	Lookup TitleLookup
	Cache  *storage.Cache
}

// Search implements TitleLookup.
func (c *CachedLookup) Search(ctx context.Context, title string) ([]reference.CanonicalEntry, error) {
	if entries, ok, err := c.Cache.Get(title); err == nil && ok {
		return entries, nil
	}

	entries, err := c.Lookup.Search(ctx, title)
	if err != nil {
		return nil, err
	}

	// A failed cache write is not a failed lookup.
	_ = c.Cache.Put(title, entries)
	return entries, nil
}
