// Package memory provides map-backed implementations of the storage
// interfaces, with a snapshot/rollback transaction runner. It backs the
// service tests and doubles as a reference for the store contracts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/storage"
)

// Store keeps orders, receipts and inventory items in process memory. The
// per-entity stores are views over this shared state, obtained via Orders,
// Receipts and Inventory.
type Store struct {
	// txnMu serializes transactions, standing in for the storage layer's
	// transaction isolation. mu guards the maps themselves.
	txnMu sync.Mutex
	mu    sync.Mutex

	orders   map[string]models.Order
	receipts map[string]models.Receipt
	items    map[string]models.InventoryItem
}

// NewStore builds an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:   make(map[string]models.Order),
		receipts: make(map[string]models.Receipt),
		items:    make(map[string]models.InventoryItem),
	}
}

// Orders returns the order view.
func (s *Store) Orders() *OrderStore { return &OrderStore{s} }

// Receipts returns the receipt view.
func (s *Store) Receipts() *ReceiptStore { return &ReceiptStore{s} }

// Inventory returns the inventory view.
func (s *Store) Inventory() *InventoryStore { return &InventoryStore{s} }

// WithTransaction runs fn under the store-wide transaction lock. On error the
// pre-transaction state is restored so no partial effect stays visible.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txnMu.Lock()
	defer s.txnMu.Unlock()

	s.mu.Lock()
	snapOrders := cloneOrderMap(s.orders)
	snapReceipts := cloneReceiptMap(s.receipts)
	snapItems := cloneItemMap(s.items)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.orders = snapOrders
		s.receipts = snapReceipts
		s.items = snapItems
		s.mu.Unlock()
		return err
	}
	return nil
}

/* ------------------------- orders ------------------------- */

// OrderStore is the order view over a Store.
type OrderStore struct {
	s *Store
}

// Insert stores an order, assigning an id when absent.
func (o *OrderStore) Insert(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	o.s.orders[order.ID.Hex()] = cloneOrder(*order)
	return nil
}

// FindByID returns a copy of the stored order.
func (o *OrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	stored, ok := o.s.orders[id.Hex()]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := cloneOrder(stored)
	return &out, nil
}

// Update replaces the stored order document.
func (o *OrderStore) Update(_ context.Context, order *models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if _, ok := o.s.orders[order.ID.Hex()]; !ok {
		return storage.ErrNotFound
	}
	o.s.orders[order.ID.Hex()] = cloneOrder(*order)
	return nil
}

/* ------------------------ receipts ------------------------ */

// ReceiptStore is the receipt view over a Store.
type ReceiptStore struct {
	s *Store
}

// Insert stores a receipt, assigning an id when absent.
func (r *ReceiptStore) Insert(_ context.Context, receipt *models.Receipt) error {
	if receipt.ID.IsZero() {
		receipt.ID = primitive.NewObjectID()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receipts[receipt.ID.Hex()] = cloneReceipt(*receipt)
	return nil
}

// FindByID returns a copy of the stored receipt.
func (r *ReceiptStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.receipts[id.Hex()]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := cloneReceipt(stored)
	return &out, nil
}

// Delete removes a receipt document.
func (r *ReceiptStore) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.receipts[id.Hex()]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.receipts, id.Hex())
	return nil
}

// ListBetween returns receipts with ReceivedAt in [from, to), newest first.
func (r *ReceiptStore) ListBetween(_ context.Context, from, to time.Time) ([]models.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Receipt
	for _, stored := range r.s.receipts {
		if !stored.ReceivedAt.Before(from) && stored.ReceivedAt.Before(to) {
			out = append(out, cloneReceipt(stored))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

// Count reports how many receipts are stored.
func (r *ReceiptStore) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.receipts)
}

/* ------------------------ inventory ----------------------- */

// InventoryStore is the inventory view over a Store.
type InventoryStore struct {
	s *Store
}

// Put stores an inventory item, assigning an id when absent.
func (i *InventoryStore) Put(_ context.Context, item *models.InventoryItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	i.s.items[item.ID.Hex()] = *item
	return nil
}

// IncrementQuantity adjusts the stocked quantity by delta.
func (i *InventoryStore) IncrementQuantity(_ context.Context, id primitive.ObjectID, delta float64) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	item, ok := i.s.items[id.Hex()]
	if !ok {
		return storage.ErrNotFound
	}
	item.Quantity += delta
	i.s.items[id.Hex()] = item
	return nil
}

// Get returns a copy of the stored inventory item.
func (i *InventoryStore) Get(id primitive.ObjectID) (models.InventoryItem, bool) {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	item, ok := i.s.items[id.Hex()]
	return item, ok
}

/* ------------------------- cloning ------------------------ */

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	if o.ReceivedMap != nil {
		m := make(map[string]float64, len(o.ReceivedMap))
		for k, v := range o.ReceivedMap {
			m[k] = v
		}
		o.ReceivedMap = m
	}
	return o
}

func cloneReceipt(r models.Receipt) models.Receipt {
	r.Items = append([]models.ReceiptItem(nil), r.Items...)
	if r.OrderID != nil {
		id := *r.OrderID
		r.OrderID = &id
	}
	return r
}

func cloneOrderMap(in map[string]models.Order) map[string]models.Order {
	out := make(map[string]models.Order, len(in))
	for k, v := range in {
		out[k] = cloneOrder(v)
	}
	return out
}

func cloneReceiptMap(in map[string]models.Receipt) map[string]models.Receipt {
	out := make(map[string]models.Receipt, len(in))
	for k, v := range in {
		out[k] = cloneReceipt(v)
	}
	return out
}

func cloneItemMap(in map[string]models.InventoryItem) map[string]models.InventoryItem {
	out := make(map[string]models.InventoryItem, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
