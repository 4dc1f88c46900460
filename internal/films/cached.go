package films

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"
)

const (
	kindTitles  = "titles"
	kindPersons = "persons"
)

// ResponseCache is the storage the Cached catalog reads through.
// cache.Store satisfies it.
type ResponseCache interface {
	Get(ctx context.Context, kind, key string) ([]byte, bool, error)
	Put(ctx context.Context, kind, key string, payload []byte) error
}

// Cached is a read-through Catalog. Cache failures are logged and fall back
// to the wrapped catalog; they never fail a lookup. Identical concurrent
// lookups share one upstream call.
type Cached struct {
	next      Catalog
	store     ResponseCache
	namespace string
	group     singleflight.Group
}

var _ Catalog = (*Cached)(nil)

// NewCached wraps next. namespace separates entries produced under different
// endpoints or search options sharing one cache file.
func NewCached(next Catalog, store ResponseCache, namespace string) *Cached {
	return &Cached{next: next, store: store, namespace: namespace}
}

// SearchTitles implements Catalog.
func (c *Cached) SearchTitles(ctx context.Context, term string) ([]Suggestion, error) {
	key := c.namespace + "\x00" + term
	var out []Suggestion
	err := c.through(ctx, kindTitles, key, &out, func(ctx context.Context) (any, error) {
		return c.next.SearchTitles(ctx, term)
	})
	return out, err
}

// CommonPersons implements Catalog. Title order is part of the key because
// the backend is free to order results by it.
func (c *Cached) CommonPersons(ctx context.Context, titles []string) ([]Person, error) {
	key := c.namespace + "\x00" + strings.Join(titles, "\x1f")
	var out []Person
	err := c.through(ctx, kindPersons, key, &out, func(ctx context.Context) (any, error) {
		return c.next.CommonPersons(ctx, titles)
	})
	return out, err
}

func (c *Cached) through(ctx context.Context, kind, key string, out any, fetch func(context.Context) (any, error)) error {
	load := func(ctx context.Context) ([]byte, error) {
		if payload, ok, err := c.store.Get(ctx, kind, key); err != nil {
			log.Logf("cache read %s: %v", kind, err)
		} else if ok {
			log.Logf("cache hit %s", kind)
			return payload, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := c.store.Put(ctx, kind, key, payload); err != nil {
			log.Logf("cache write %s: %v", kind, err)
		}
		return payload, nil
	}

	v, err, shared := c.group.Do(kind+"\x00"+key, func() (any, error) {
		return load(ctx)
	})
	// A shared call may have been cancelled by the caller that started it.
	if err != nil && shared && errors.Is(err, context.Canceled) && ctx.Err() == nil {
		v, err = load(ctx)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), out)
}
