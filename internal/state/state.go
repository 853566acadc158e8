// Package state owns the durable collections behind the cart and wishlist.
// Every mutation in the system flows through Store.Save, which is the single
// writer path and the only place change notifications originate.
package state

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/threadline/storefront/pkg/errors"
	"github.com/threadline/storefront/pkg/events"
	"github.com/threadline/storefront/pkg/logger"
	"github.com/threadline/storefront/pkg/metrics"
)

// Namespaces distinguishing the durable collections.
const (
	NamespaceCart     = "cart"
	NamespaceWishlist = "wishlist"
)

// Repository is the narrow durable surface beneath the store. Get returns a
// nil payload (and nil error) when the namespace has never been written.
type Repository interface {
	Get(ctx context.Context, namespace string) ([]byte, error)
	Put(ctx context.Context, namespace string, payload []byte) error
}

// Store reads and replaces whole collection documents and publishes a change
// notification for the namespace after every successful save.
type Store struct {
	repo    Repository
	broker  *events.Broker
	metrics *metrics.CollectionMetrics
	logg    *logger.Logger
}

// NewStore builds a store over the provided repository.
func NewStore(repo Repository, broker *events.Broker, coll *metrics.CollectionMetrics, logg *logger.Logger) (*Store, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "state repository is required")
	}
	if broker == nil {
		broker = events.NewBroker()
	}
	return &Store{repo: repo, broker: broker, metrics: coll, logg: logg}, nil
}

// Broker exposes the change notifier so observers can subscribe.
func (s *Store) Broker() *events.Broker {
	return s.broker
}

// Load decodes the collection for the namespace. An absent key, a read
// failure, or a corrupt payload all degrade to an empty collection: the UI
// must always render, so storage-read problems are logged and absorbed here
// rather than surfaced to callers.
func Load[T any](ctx context.Context, s *Store, namespace string) []T {
	payload, err := s.repo.Get(ctx, namespace)
	if err != nil {
		s.recordLoadFailure(ctx, namespace, "collection read failed, treating as empty")
		return []T{}
	}
	if len(payload) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		s.recordLoadFailure(ctx, namespace, "collection payload corrupt, treating as empty")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save atomically replaces the collection document and notifies observers of
// the namespace. A nil item slice persists as an empty array.
func (s *Store) Save(ctx context.Context, namespace string, items any) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode collection")
	}
	if string(payload) == "null" {
		payload = []byte("[]")
	}

	started := time.Now()
	if err := s.repo.Put(ctx, namespace, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist collection")
	}
	s.metrics.ObserveSave(namespace, time.Since(started))

	s.broker.Publish(namespace)
	s.metrics.IncNotification(namespace)
	return nil
}

func (s *Store) recordLoadFailure(ctx context.Context, namespace, msg string) {
	s.metrics.IncLoadFailure(namespace)
	if s.logg != nil {
		s.logg.Warn(s.logg.WithNamespace(ctx, namespace), msg)
	}
}
