package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/bookstore/services/storefront/internal/metrics"
	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the serialized cart
const DefaultKey = "cart"

// Storage is the durable key/value medium backing the cart
type Storage interface {
	// Get returns the value under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Notifier is told after every successful cart write. Listeners must re-read
// the store; the notification carries no cart state of its own.
type Notifier interface {
	CartUpdated(ctx context.Context, key string, totalItems int) error
}

// Store reads and mutates the persisted cart. It holds no cart state: every
// operation goes to storage, and every mutation is a full read-modify-write
// of the stored blob. Two stores racing on the same key can lose an update;
// the last write observed by storage wins.
type Store struct {
	storage  Storage
	key      string
	notifier Notifier
	log      *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithNotifier registers a listener for successful writes
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// NewStore creates a cart store over storage
func NewStore(storage Storage, log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key the cart lives under
func (s *Store) Key() string {
	return s.key
}

// Read reconstructs the cart from storage. Absent, corrupt or unreadable
// data yields an empty cart.
func (s *Store) Read(ctx context.Context) Cart {
	c, err := s.load(ctx)
	if err != nil {
		s.log.Warn("Failed to read cart, using empty cart", zap.String("key", s.key), zap.Error(err))
		metrics.CartReadFailures.WithLabelValues("storage").Inc()
		return New()
	}
	return c
}

// load reads the stored cart. Absent or malformed data is an empty cart; a
// failed Get is an error.
func (s *Store) load(ctx context.Context) (Cart, error) {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return Cart{}, err
	}
	if !found || raw == "" {
		return New(), nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		s.log.Warn("Discarding malformed cart data", zap.String("key", s.key), zap.Error(err))
		metrics.CartReadFailures.WithLabelValues("decode").Inc()
		return New(), nil
	}
	return c, nil
}

func (s *Store) loadForUpdate(ctx context.Context, op string) (Cart, error) {
	c, err := s.load(ctx)
	if err != nil {
		s.log.Error("Failed to read cart for update", zap.String("key", s.key), zap.String("op", op), zap.Error(err))
		metrics.CartReadFailures.WithLabelValues("storage").Inc()
		return Cart{}, fmt.Errorf("failed to read cart: %w", err)
	}
	return c, nil
}

// Add is the add-to-cart action: AddOrIncrement with a quantity of one
func (s *Store) Add(ctx context.Context, bookID string) (Cart, error) {
	return s.AddOrIncrement(ctx, bookID, 1)
}

// AddOrIncrement raises the quantity of bookID by qty, creating the line if
// needed. A non-positive qty is treated as 1; the quantity saturates at
// math.MaxInt.
func (s *Store) AddOrIncrement(ctx context.Context, bookID string, qty int) (Cart, error) {
	if qty <= 0 {
		qty = 1
	}
	c, err := s.loadForUpdate(ctx, "add")
	if err != nil {
		return Cart{}, err
	}

	current := c.Quantity(bookID)
	total := math.MaxInt
	if current <= math.MaxInt-qty {
		total = current + qty
	}
	c = c.with(bookID, total)
	return c, s.write(ctx, c, "add")
}

// SetQuantity sets the line for bookID to exactly qty; qty <= 0 removes it
func (s *Store) SetQuantity(ctx context.Context, bookID string, qty int) (Cart, error) {
	op := "set"
	if qty <= 0 {
		op = "remove"
	}
	c, err := s.loadForUpdate(ctx, op)
	if err != nil {
		return Cart{}, err
	}
	c = c.with(bookID, qty)
	return c, s.write(ctx, c, op)
}

// Remove deletes the line for bookID
func (s *Store) Remove(ctx context.Context, bookID string) (Cart, error) {
	return s.SetQuantity(ctx, bookID, 0)
}

// TotalItemCount re-reads storage and sums all line quantities
func (s *Store) TotalItemCount(ctx context.Context) int {
	return s.Read(ctx).TotalItemCount()
}

func (s *Store) write(ctx context.Context, c Cart, op string) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.log.Error("Failed to persist cart", zap.String("key", s.key), zap.String("op", op), zap.Error(err))
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	metrics.CartMutations.WithLabelValues(op).Inc()

	total := c.TotalItemCount()
	metrics.CartItems.Set(float64(total))
	s.log.Debug("Cart updated", zap.String("key", s.key), zap.String("op", op), zap.Int("total_items", total))

	if s.notifier != nil {
		if err := s.notifier.CartUpdated(ctx, s.key, total); err != nil {
			s.log.Warn("Failed to notify cart update", zap.String("key", s.key), zap.Error(err))
		}
	}
	return nil
}
