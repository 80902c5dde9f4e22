package database

import (
	"context"
	"time"
)

type Database struct {
	store       DocumentStore
	singletons  *SingletonStore
	collections *CollectionStore
}

type Option func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now for the timestamps section stores write.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) { o.now = now }
}

// New builds the section stores on top of one document store.
func New(store DocumentStore, opts ...Option) Database {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return Database{
		store:       store,
		singletons:  NewSingletonStore(store, o.now),
		collections: NewCollectionStore(store, o.now),
	}
}

func (d Database) Singletons() *SingletonStore {
	return d.singletons
}

func (d Database) Collections() *CollectionStore {
	return d.collections
}

// Ping reports whether the underlying store is reachable.
func (d Database) Ping(ctx context.Context) error {
	return d.store.Ping(ctx)
}

func (d Database) Close(ctx context.Context) error {
	return d.store.Close(ctx)
}
