// Package state holds the storefront client's catalog and cart, plus the
// session, wishlist and checkout flows built on them.
package state

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/storefront/storage"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

// ErrSuperseded is returned by LoadCatalog and Search when a newer call of
// the same kind was issued before this one's response arrived. The stale
// response is dropped.
var ErrSuperseded = stderrors.New("state: superseded by a newer request")

type CatalogService interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	SearchProducts(ctx context.Context, query string) ([]entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type Logger interface {
	Printf(format string, v ...interface{})
}

type Manager struct {
	catalog CatalogService
	store   storage.Store
	log     Logger

	mu       sync.Mutex
	products []entity.Product
	index    map[int64]int
	lines    []entity.CartLine

	catalogGen uint64
	searchGen  uint64

	// notifyMu is taken before mu is released so events go out in
	// mutation order.
	notifyMu   sync.Mutex
	listeners  map[int]Listener
	nextListen int
	version    uint64
}

// NewManager builds an empty manager. A nil log writes to the WARN logger.
func NewManager(catalog CatalogService, store storage.Store, log Logger) *Manager {
	if log == nil {
		log = logger.WarnLogger
	}
	return &Manager{
		catalog:   catalog,
		store:     store,
		log:       log,
		index:     make(map[int64]int),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListen
	m.nextListen++
	m.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// LoadCatalog replaces the catalog with the remote product list. Cart
// lines are kept even when their product disappeared.
func (m *Manager) LoadCatalog(ctx context.Context) error {
	m.mu.Lock()
	m.catalogGen++
	gen := m.catalogGen
	m.mu.Unlock()

	products, err := m.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if gen != m.catalogGen {
		m.mu.Unlock()
		return ErrSuperseded
	}
	m.setProducts(products)
	m.emit(EventCatalogLoaded)
	return nil
}

// ApplyCatalogEvent folds a pushed stock change into the catalog. Other
// event types are ignored.
func (m *Manager) ApplyCatalogEvent(event entity.CatalogEvent) {
	if event.Type != entity.CatalogEventStockChanged || len(event.Changes) == 0 {
		return
	}

	m.mu.Lock()
	changed := false
	for _, change := range event.Changes {
		if i, ok := m.index[change.ProductID]; ok && m.products[i].Stock != change.Stock {
			m.products[i].Stock = change.Stock
			changed = true
		}
	}
	if !changed {
		m.mu.Unlock()
		return
	}
	m.emit(EventCatalogUpdated)
}

func (m *Manager) setProducts(products []entity.Product) {
	m.products = make([]entity.Product, len(products))
	copy(m.products, products)
	m.index = make(map[int64]int, len(products))
	for i, p := range m.products {
		m.index[p.ID] = i
	}
}

// Products returns the full catalog.
func (m *Manager) Products() []entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.productsLocked()
}

func (m *Manager) productsLocked() []entity.Product {
	out := make([]entity.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *Manager) Product(id int64) (entity.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.productLocked(id)
	if !ok {
		return entity.Product{}, false
	}
	return *p, true
}

func (m *Manager) productLocked(id int64) (*entity.Product, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return &m.products[i], true
}

// FilterByCategory returns the catalog products in category. An empty
// category returns the whole catalog.
func (m *Manager) FilterByCategory(category string) []entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category == "" {
		return m.productsLocked()
	}
	out := make([]entity.Product, 0)
	for _, p := range m.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search asks the catalog service for products matching query. A blank
// query returns the in-memory catalog without a remote call.
func (m *Manager) Search(ctx context.Context, query string) ([]entity.Product, error) {
	query = strings.TrimSpace(query)

	m.mu.Lock()
	if query == "" {
		defer m.mu.Unlock()
		return m.productsLocked(), nil
	}
	m.searchGen++
	gen := m.searchGen
	m.mu.Unlock()

	results, err := m.catalog.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.searchGen {
		return nil, ErrSuperseded
	}
	return results, nil
}

// AddItem puts one more of the product in the cart. Unknown and out of
// stock products are ignored. Adding past the product's stock is a
// capacity error and changes nothing.
func (m *Manager) AddItem(productID int64) error {
	m.mu.Lock()

	p, ok := m.productLocked(productID)
	if !ok || p.Stock <= 0 {
		m.mu.Unlock()
		return nil
	}

	if i := m.lineIndex(productID); i >= 0 {
		if m.lines[i].Quantity >= p.Stock {
			m.mu.Unlock()
			return errors.StockExceeded("")
		}
		m.lines[i].Quantity++
	} else {
		m.lines = append(m.lines, entity.CartLine{ProductID: productID, Quantity: 1})
	}

	return m.commit(EventCartChanged)
}

// UpdateQuantity adds delta to the product's line. A result of zero or
// less removes the line. Any other result above the product's stock is a
// capacity error, whichever way delta points. Lines whose product is
// missing from the catalog can only be decreased.
func (m *Manager) UpdateQuantity(productID int64, delta int) error {
	m.mu.Lock()

	i := m.lineIndex(productID)
	if i < 0 || delta == 0 {
		m.mu.Unlock()
		return nil
	}

	newQuantity := m.lines[i].Quantity + delta
	if newQuantity <= 0 {
		m.lines = append(m.lines[:i], m.lines[i+1:]...)
		return m.commit(EventCartChanged)
	}

	p, ok := m.productLocked(productID)
	if !ok && delta > 0 {
		m.mu.Unlock()
		return errors.NotFound("Product", nil)
	}
	if ok && newQuantity > p.Stock {
		m.mu.Unlock()
		return errors.StockExceeded(p.Name)
	}

	m.lines[i].Quantity = newQuantity
	return m.commit(EventCartChanged)
}

// RemoveItem drops the product's line if there is one.
func (m *Manager) RemoveItem(productID int64) error {
	m.mu.Lock()

	i := m.lineIndex(productID)
	if i < 0 {
		m.mu.Unlock()
		return nil
	}
	m.lines = append(m.lines[:i], m.lines[i+1:]...)
	return m.commit(EventCartChanged)
}

// Clear empties the cart.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.lines = nil
	return m.commit(EventCartChanged)
}

func (m *Manager) lineIndex(productID int64) int {
	for i, line := range m.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Total is the cart's price at list price. Lines whose product is not in
// the catalog contribute nothing but stay in the cart.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalLocked()
}

func (m *Manager) totalLocked() float64 {
	var total float64
	for _, line := range m.lines {
		if p, ok := m.productLocked(line.ProductID); ok {
			total += p.Price * float64(line.Quantity)
		}
	}
	return entity.RoundCents(total)
}

func (m *Manager) Lines() []entity.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

// ItemCount is the number of units across all lines.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemCountLocked()
}

func (m *Manager) itemCountLocked() int {
	count := 0
	for _, line := range m.lines {
		count += line.Quantity
	}
	return count
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	items := make([]CartItem, 0, len(m.lines))
	for _, line := range m.lines {
		item := CartItem{ProductID: line.ProductID, Quantity: line.Quantity}
		if p, ok := m.productLocked(line.ProductID); ok {
			cp := *p
			item.Product = &cp
			item.Subtotal = entity.RoundCents(p.Price * float64(line.Quantity))
		}
		items = append(items, item)
	}

	return Snapshot{
		Products:  m.productsLocked(),
		Cart:      items,
		Total:     m.totalLocked(),
		ItemCount: m.itemCountLocked(),
	}
}

// Persist writes the cart to durable storage.
func (m *Manager) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistLocked()
}

func (m *Manager) encodeLocked() ([]byte, error) {
	lines := m.lines
	if lines == nil {
		lines = []entity.CartLine{}
	}
	return json.Marshal(lines)
}

func (m *Manager) persistLocked() error {
	raw, err := m.encodeLocked()
	if err != nil {
		return err
	}
	if err := m.store.Set(storage.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// Restore replaces the in-memory cart with the stored one. A missing or
// unreadable cart starts empty; only a storage read failure is returned.
func (m *Manager) Restore() error {
	raw, err := m.store.Get(storage.KeyCart)
	if err != nil && !stderrors.Is(err, storage.ErrNotFound) {
		m.mu.Lock()
		m.lines = nil
		m.emit(EventCartRestored)
		return fmt.Errorf("restore cart: %w", err)
	}

	var lines []entity.CartLine
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), &lines); jsonErr != nil {
			m.log.Printf("Stored cart is unreadable, starting with an empty cart: %v", jsonErr)
			lines = nil
		}
	}

	m.mu.Lock()
	m.lines = normalizeLines(lines)
	m.emit(EventCartRestored)
	return nil
}

// normalizeLines merges duplicate product lines and drops non-positive
// quantities, keeping first-seen order.
func normalizeLines(lines []entity.CartLine) []entity.CartLine {
	var out []entity.CartLine
	seen := make(map[int64]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if i, ok := seen[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		seen[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// commit persists the cart and notifies listeners. It must be called with
// mu held and releases it. A persist failure is returned after listeners
// have seen the new state; the in-memory change stands.
func (m *Manager) commit(kind EventKind) error {
	err := m.persistLocked()
	m.emit(kind)
	if err != nil {
		m.log.Printf("%v", err)
	}
	return err
}

// emit snapshots the state and delivers it to every listener. It must be
// called with mu held and releases it.
func (m *Manager) emit(kind EventKind) {
	m.version++
	event := Event{Kind: kind, Version: m.version, Snapshot: m.snapshotLocked()}
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}

	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}
