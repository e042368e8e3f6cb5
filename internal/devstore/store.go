package devstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/metalldk/storefront/pkg/security"
	"github.com/metalldk/storefront/pkg/storefront"
	"github.com/metalldk/storefront/pkg/types"
)

// Store keeps the development backend's state in memory. All methods are safe
// for concurrent use.
type Store struct {
	mu     sync.RWMutex
	hasher passwordHasher
	now    func() time.Time

	users   map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
	byPhone map[string]uuid.UUID

	carts map[string][]storefront.CartItem

	itemOrders    []ItemOrder
	serviceOrders []ServiceOrder
	nextItemID    int64
	nextServiceID int64
	products      []storefront.Product
	news          []storefront.NewsItem
	social        types.SocialLinks
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

var _ passwordHasher = (*security.Hasher)(nil)

// New builds an empty store. Call Seed to load the demo catalog.
func New(hasher passwordHasher) *Store {
	return &Store{
		hasher:  hasher,
		now:     time.Now,
		users:   map[uuid.UUID]*User{},
		byEmail: map[string]uuid.UUID{},
		byPhone: map[string]uuid.UUID{},
		carts:   map[string][]storefront.CartItem{},
	}
}
