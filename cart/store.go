// Package cart implements the shopping cart state machine.
//
// A Store owns an ordered list of lines, at most one per (product id, size),
// each with a quantity of at least one, plus the drawer visibility flag.
// Totals are computed from the lines on every read. Every mutation is atomic
// with respect to readers, and listeners are notified after the change is
// committed, in commit order, even when a listener mutates the store itself. Operations that reference a line that does not exist are silent
// no-ops.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"storefront/models"
)

var (
	ErrNilProduct  = errors.New("product is required")
	ErrInvalidSize = errors.New("size not offered for product")
)

type Store struct {
	mu     sync.RWMutex
	lines  []models.CartLine
	isOpen bool

	// queue holds committed events not yet delivered; both fields are guarded
	// by mu. Only the caller that set draining delivers.
	queue    []Event
	draining bool

	subMu     sync.Mutex
	listeners map[int]Listener
	order     []int
	nextSubID int
}

func New() *Store {
	return &Store{
		lines:     []models.CartLine{},
		listeners: map[int]Listener{},
	}
}

// AddItem increments the (product, size) line or appends a new line with
// quantity 1. Visibility is left alone; callers that want the drawer to
// surface react to EventItemAdded.
func (s *Store) AddItem(product *models.Product, size string) (Event, error) {
	if product == nil {
		return Event{}, ErrNilProduct
	}
	if !product.HasSize(size) {
		return Event{}, fmt.Errorf("%w: %s has no size %q", ErrInvalidSize, product.ID, size)
	}

	s.mu.Lock()
	quantity := 1
	if i := s.find(product.ID, size); i >= 0 {
		s.lines[i].Quantity++
		quantity = s.lines[i].Quantity
	} else {
		s.lines = append(s.lines, models.CartLine{Product: product, Size: size, Quantity: 1})
	}
	ev := Event{Kind: EventItemAdded, ProductID: product.ID, Size: size, Quantity: quantity, Summary: s.summary()}
	s.commit(ev)
	return ev, nil
}

// RemoveItem deletes the matching line. It reports whether a line existed.
func (s *Store) RemoveItem(productID, size string) bool {
	s.mu.Lock()
	i := s.find(productID, size)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	ev := Event{Kind: EventItemRemoved, ProductID: productID, Size: size, Summary: s.summary()}
	s.commit(ev)
	return true
}

// UpdateQuantity sets the line's quantity; anything below 1 removes the
// line. A missing line is never created.
func (s *Store) UpdateQuantity(productID, size string, quantity int) bool {
	if quantity < 1 {
		return s.RemoveItem(productID, size)
	}

	s.mu.Lock()
	i := s.find(productID, size)
	if i < 0 || s.lines[i].Quantity == quantity {
		s.mu.Unlock()
		return false
	}
	s.lines[i].Quantity = quantity
	ev := Event{Kind: EventQuantityUpdated, ProductID: productID, Size: size, Quantity: quantity, Summary: s.summary()}
	s.commit(ev)
	return true
}

// Clear empties the cart without touching visibility.
func (s *Store) Clear() bool {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return false
	}
	s.lines = []models.CartLine{}
	ev := Event{Kind: EventCleared, Summary: s.summary()}
	s.commit(ev)
	return true
}

func (s *Store) Open() bool {
	return s.setOpen(func(bool) bool { return true })
}

func (s *Store) Close() bool {
	return s.setOpen(func(bool) bool { return false })
}

func (s *Store) Toggle() bool {
	return s.setOpen(func(open bool) bool { return !open })
}

func (s *Store) setOpen(next func(bool) bool) bool {
	s.mu.Lock()
	open := next(s.isOpen)
	if open == s.isOpen {
		s.mu.Unlock()
		return false
	}
	s.isOpen = open
	kind := EventClosed
	if open {
		kind = EventOpened
	}
	ev := Event{Kind: kind, Summary: s.summary()}
	s.commit(ev)
	return true
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartLine{}, s.lines...)
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalItems(s.lines)
}

func (s *Store) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalPrice(s.lines)
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOpen
}

// Summary returns lines, visibility and totals from a single snapshot.
func (s *Store) Summary() models.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary()
}

// Subscribe registers l for every committed change. Listeners run in
// subscription order, outside the store lock, so they may read or mutate the
// store. A mutation made from a listener is delivered once the current event
// has reached every listener. Listeners must not block.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.listeners, id)
			for i, sid := range s.order {
				if sid == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// commit is called with mu held and releases it. The event is queued in
// commit order; if no other call is delivering, this one drains the queue
// before returning. Concurrent and nested commits return after queueing.
func (s *Store) commit(ev Event) {
	s.queue = append(s.queue, ev)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.queue = nil
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.notify(next)
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.subMu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// caller holds mu
func (s *Store) find(productID, size string) int {
	for i, line := range s.lines {
		if line.Product.ID == productID && line.Size == size {
			return i
		}
	}
	return -1
}

// caller holds mu
func (s *Store) summary() models.CartSummary {
	return models.CartSummary{
		Lines:      append([]models.CartLine{}, s.lines...),
		IsOpen:     s.isOpen,
		TotalItems: totalItems(s.lines),
		TotalPrice: totalPrice(s.lines),
	}
}

func totalItems(lines []models.CartLine) int {
	n := 0
	for _, line := range lines {
		n += line.Quantity
	}
	return n
}

func totalPrice(lines []models.CartLine) int {
	sum := 0
	for _, line := range lines {
		sum += line.Subtotal()
	}
	return sum
}
