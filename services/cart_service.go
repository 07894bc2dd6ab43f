package services

import (
	"log"
	"sync"
	"time"

	"storefront/cart"
	"storefront/catalog"
	"storefront/models"
)

type cartSession struct {
	store       *cart.Store
	lastSeen    time.Time
	subscribers int
}

// CartService owns one cart store per guest session. Stores live for the
// process lifetime and are dropped after ttl without activity.
type CartService struct {
	index *catalog.Index
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*cartSession

	stop     chan struct{}
	stopOnce sync.Once
}

func NewCartService(index *catalog.Index, ttl time.Duration) *CartService {
	return &CartService{
		index:    index,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*cartSession{},
		stop:     make(chan struct{}),
	}
}

// StartJanitor evicts idle sessions every interval until Close is called.
func (s *CartService) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.EvictIdle(); n > 0 {
					log.Printf("Evicted %d idle cart sessions", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *CartService) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Store returns the session's cart, creating an empty one on first use.
func (s *CartService) Store(sessionID string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(sessionID).store
}

// caller holds mu
func (s *CartService) touch(sessionID string) *cartSession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &cartSession{store: cart.New()}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *CartService) GetCart(sessionID string) models.CartSummary {
	return s.Store(sessionID).Summary()
}

// AddItem resolves the product and adds one unit. A successful add surfaces
// the cart drawer.
func (s *CartService) AddItem(sessionID, productID, size string) (models.CartSummary, error) {
	p, ok := s.index.GetByID(productID)
	if !ok {
		return models.CartSummary{}, ErrProductNotFound
	}
	if p.SoldOut() {
		return models.CartSummary{}, ErrProductSoldOut
	}

	store := s.Store(sessionID)
	ev, err := store.AddItem(p, size)
	if err != nil {
		return models.CartSummary{}, err
	}
	if ev.Kind == cart.EventItemAdded {
		store.Open()
	}
	return store.Summary(), nil
}

func (s *CartService) RemoveItem(sessionID, productID, size string) models.CartSummary {
	store := s.Store(sessionID)
	store.RemoveItem(productID, size)
	return store.Summary()
}

func (s *CartService) UpdateQuantity(sessionID, productID, size string, quantity int) models.CartSummary {
	store := s.Store(sessionID)
	store.UpdateQuantity(productID, size, quantity)
	return store.Summary()
}

func (s *CartService) ClearCart(sessionID string) models.CartSummary {
	store := s.Store(sessionID)
	store.Clear()
	return store.Summary()
}

func (s *CartService) OpenCart(sessionID string) models.CartSummary {
	store := s.Store(sessionID)
	store.Open()
	return store.Summary()
}

func (s *CartService) CloseCart(sessionID string) models.CartSummary {
	store := s.Store(sessionID)
	store.Close()
	return store.Summary()
}

func (s *CartService) ToggleCart(sessionID string) models.CartSummary {
	store := s.Store(sessionID)
	store.Toggle()
	return store.Summary()
}

// Subscribe attaches l to the session's cart. A session with subscribers is
// never evicted.
func (s *CartService) Subscribe(sessionID string, l cart.Listener) (unsubscribe func()) {
	s.mu.Lock()
	sess := s.touch(sessionID)
	sess.subscribers++
	s.mu.Unlock()

	cancel := sess.store.Subscribe(l)
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			s.mu.Lock()
			defer s.mu.Unlock()
			sess.subscribers--
			sess.lastSeen = s.now()
		})
	}
}

func (s *CartService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// EvictIdle drops sessions idle for longer than ttl and returns how many.
func (s *CartService) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.subscribers == 0 && sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
