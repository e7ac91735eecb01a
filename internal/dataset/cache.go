package dataset

import (
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"csvdash/internal/ingest"
)

// Loader reads CSV (or zipped CSV) files and memoizes parsed tables by path,
// modification time and size, so repeated page renders do not re-read or
// re-decode the file.
type Loader struct {
	cache *lru.Cache[string, *ingest.Table]
}

// NewLoader creates a Loader keeping at most entries parsed tables.
func NewLoader(entries int) (*Loader, error) {
	if entries <= 0 {
		entries = 16
	}
	c, err := lru.New[string, *ingest.Table](entries)
	if err != nil {
		return nil, fmt.Errorf("new loader cache: %w", err)
	}
	return &Loader{cache: c}, nil
}

// Load returns the parsed table for path, from cache when the file is
// unchanged.
func (l *Loader) Load(path string, opt ingest.Options) (*ingest.Table, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	key := fmt.Sprintf("%s|%d|%d|%d", path, fi.ModTime().UnixNano(), fi.Size(), opt.MaxRows)
	if t, ok := l.cache.Get(key); ok {
		return t, nil
	}
	var t *ingest.Table
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		t, err = ingest.ReadCSVFromZip(path, opt)
	} else {
		t, err = ingest.ReadCSV(path, opt)
	}
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, t)
	return t, nil
}

// Len reports the number of cached tables.
func (l *Loader) Len() int { return l.cache.Len() }
