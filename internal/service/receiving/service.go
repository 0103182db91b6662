// Package receiving implements the order-fulfillment reconciliation engine:
// given a purchase order and newly received quantities it validates the
// request against the remaining table, appends a receipt, increments
// inventory, updates the order's cumulative-received ledger and derives the
// order status, all inside one storage transaction.
package receiving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/storage"
	"github.com/mamadbah2/stockroom/pkg/numeric"
)

// OrderStore is the slice of order persistence the engine needs.
type OrderStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

// ReceiptStore persists receipt documents.
type ReceiptStore interface {
	Insert(ctx context.Context, receipt *models.Receipt) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Receipt, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InventoryStore exposes the single inventory write the engine issues: an
// atomic increment of the stocked quantity. The engine never reads or
// rewrites the full inventory document.
type InventoryStore interface {
	IncrementQuantity(ctx context.Context, id primitive.ObjectID, delta float64) error
}

// TxnRunner scopes a unit of work to one storage transaction. The callback's
// context carries the session; any error aborts with no partial effect
// observable.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UnitClassifier reports whether a unit only admits whole-number quantities.
type UnitClassifier interface {
	IsIntegerUnit(unit string) bool
}

// Notifier is told, after commit, when an order becomes fully received.
// Implementations must be best-effort; the reconciliation has already
// committed by the time this fires.
type Notifier interface {
	OrderReceived(ctx context.Context, orderID, supplier string)
}

// RequestedLine is one caller-supplied receipt line. A nil Quantity means
// "the full remaining quantity of that order line"; a nil UnitPrice falls
// back to the order row's snapshot price.
type RequestedLine struct {
	ItemID    primitive.ObjectID
	Quantity  *float64
	UnitPrice *float64
}

// ReceiveRequest describes a reconciliation call. An empty Items slice means
// "receive everything still remaining".
type ReceiveRequest struct {
	OrderID    primitive.ObjectID
	Items      []RequestedLine
	Notes      string
	ReceivedAt *time.Time
}

// StandaloneLine is a line on a receipt that is not linked to any order, so
// the snapshot data comes from the caller.
type StandaloneLine struct {
	ItemID    primitive.ObjectID
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice float64
}

// StandaloneRequest creates a receipt without an order back-reference.
type StandaloneRequest struct {
	Items      []StandaloneLine
	Notes      string
	ReceivedAt *time.Time
}

// Deps bundles the engine's collaborators. Now and AuditNote are injected so
// tests can pin time and note text; both default to production behavior.
type Deps struct {
	Orders    OrderStore
	Receipts  ReceiptStore
	Inventory InventoryStore
	Txn       TxnRunner
	Units     UnitClassifier
	Notifier  Notifier
	Now       func() time.Time
	AuditNote func(at time.Time) string
	Logger    *zap.Logger
}

// Service is the reconciliation engine.
type Service struct {
	orders    OrderStore
	receipts  ReceiptStore
	inventory InventoryStore
	txn       TxnRunner
	units     UnitClassifier
	notifier  Notifier
	now       func() time.Time
	auditNote func(at time.Time) string
	logger    *zap.Logger
}

// NewService wires a reconciliation engine from its collaborators.
func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.AuditNote == nil {
		deps.AuditNote = func(at time.Time) string {
			return fmt.Sprintf("[system] receipt reconciled via order integration at %s", at.UTC().Format(time.RFC3339))
		}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		orders:    deps.Orders,
		receipts:  deps.Receipts,
		inventory: deps.Inventory,
		txn:       deps.Txn,
		units:     deps.Units,
		notifier:  deps.Notifier,
		now:       deps.Now,
		auditNote: deps.AuditNote,
		logger:    deps.Logger,
	}
}

// Remaining loads an order and returns its remaining-quantity table.
func (s *Service) Remaining(ctx context.Context, orderID primitive.ObjectID) ([]models.RemainingLine, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return ComputeRemaining(order), nil
}

// Reconcile applies a receipt to an order as one atomic unit of work: it
// validates the requested lines against the remaining table, inserts the
// receipt, increments inventory, folds the received quantities into the
// order's ledger and re-derives the order status. On any error the
// transaction aborts and nothing is visible.
func (s *Service) Reconcile(ctx context.Context, req ReceiveRequest) (*models.Receipt, error) {
	var (
		saved         *models.Receipt
		supplier      string
		fullyReceived bool
	)

	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("load order: %w", err)
		}

		// Terminal-state guards: a canceled order rejects receiving outright,
		// a received order has by definition nothing left.
		switch order.Status {
		case models.OrderStatusCanceled:
			return ErrOrderCanceled
		case models.OrderStatusReceived:
			return ErrNothingRemaining
		}

		rows := ComputeRemaining(order)
		byID := make(map[string]models.RemainingLine, len(rows))
		for _, r := range rows {
			byID[r.ItemID.Hex()] = r
		}

		targets := req.Items
		if len(targets) == 0 {
			for _, r := range rows {
				if r.Remaining > 0 {
					qty := r.Remaining
					targets = append(targets, RequestedLine{ItemID: r.ItemID, Quantity: &qty})
				}
			}
		}
		if len(targets) == 0 {
			return ErrNothingRemaining
		}

		now := s.now()
		lines, err := s.buildLines(targets, byID)
		if err != nil {
			return err
		}

		receivedAt := now
		if req.ReceivedAt != nil {
			receivedAt = *req.ReceivedAt
		}
		notes := strings.TrimSpace(req.Notes)
		if notes == "" {
			notes = "[system] auto-generated from order UI"
		}

		orderID := order.ID
		receipt := &models.Receipt{
			OrderID:    &orderID,
			Items:      lines,
			ReceivedAt: receivedAt,
			Notes:      notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.receipts.Insert(ctx, receipt); err != nil {
			return fmt.Errorf("insert receipt: %w", err)
		}

		for _, ln := range lines {
			if err := s.inventory.IncrementQuantity(ctx, ln.ItemID, ln.Quantity); err != nil {
				return fmt.Errorf("increment inventory %s: %w", ln.ItemID.Hex(), err)
			}
		}

		if order.ReceivedMap == nil {
			order.ReceivedMap = make(map[string]float64, len(lines))
		}
		for _, ln := range lines {
			key := ln.ItemID.Hex()
			order.ReceivedMap[key] = numeric.RoundQty(order.ReceivedMap[key] + ln.Quantity)
		}

		order.Status = deriveStatus(ComputeRemaining(order))

		audit := s.auditNote(now)
		if order.Notes != "" {
			order.Notes = order.Notes + "\n" + audit
		} else {
			order.Notes = audit
		}
		order.UpdatedAt = now

		if err := s.orders.Update(ctx, order); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		saved = receipt
		supplier = order.Supplier
		fullyReceived = order.Status == models.OrderStatusReceived
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("receipt reconciled",
		zap.String("order_id", req.OrderID.Hex()),
		zap.Int("lines", len(saved.Items)),
		zap.Bool("fully_received", fullyReceived))

	if fullyReceived && s.notifier != nil {
		s.notifier.OrderReceived(ctx, req.OrderID.Hex(), supplier)
	}
	return saved, nil
}

// buildLines validates every target against the remaining table and produces
// the finalized receipt lines. Name and unit are snapshotted from the order
// row, never from caller input. All validation happens before any write.
// Repeated lines for the same item are validated against their running total,
// so duplicates cannot push the ledger past the ordered quantity.
func (s *Service) buildLines(targets []RequestedLine, byID map[string]models.RemainingLine) ([]models.ReceiptItem, error) {
	lines := make([]models.ReceiptItem, 0, len(targets))
	requested := make(map[string]float64, len(targets))
	for _, t := range targets {
		key := t.ItemID.Hex()
		row, ok := byID[key]
		if !ok {
			return nil, fmt.Errorf("item %s: %w", key, ErrItemNotInOrder)
		}

		qty := row.Remaining
		if t.Quantity != nil {
			qty = *t.Quantity
		}
		if !numeric.IsFinite(qty) || qty <= 0 {
			return nil, fmt.Errorf("item %s: %w", key, ErrInvalidQuantity)
		}
		// row.Remaining is already rounded, so echoing it back is always
		// accepted exactly. The total is rounded the same way the ledger
		// folds, keeping split lines free of float residue.
		total := numeric.RoundQty(requested[key] + qty)
		if total > row.Remaining {
			return nil, fmt.Errorf("item %s: %w", key, ErrQuantityExceedsRemaining)
		}
		requested[key] = total

		unit := strings.ToLower(row.Unit)
		if s.units.IsIntegerUnit(unit) {
			if !numeric.IsWhole(qty) {
				return nil, fmt.Errorf("item %s unit %q: %w", key, unit, ErrInvalidIntegerQuantity)
			}
		} else {
			qty = numeric.RoundQty(qty)
		}

		price := row.UnitPrice
		if t.UnitPrice != nil {
			price = numeric.Coerce(*t.UnitPrice, 0)
		}

		lines = append(lines, models.ReceiptItem{
			ItemID:    row.ItemID,
			Name:      row.Name,
			Quantity:  qty,
			Unit:      unit,
			UnitPrice: numeric.RoundQty(price),
		})
	}
	return lines, nil
}

// deriveStatus folds the remaining table into an order status. Sums are
// rounded to the ledger precision so the zero comparisons converge.
func deriveStatus(rows []models.RemainingLine) models.OrderStatus {
	var totalOrdered, totalRemaining float64
	for _, r := range rows {
		totalOrdered += r.Ordered
		totalRemaining += r.Remaining
	}
	totalOrdered = numeric.RoundQty(totalOrdered)
	totalRemaining = numeric.RoundQty(totalRemaining)

	switch {
	case totalRemaining == 0:
		return models.OrderStatusReceived
	case totalRemaining == totalOrdered:
		return models.OrderStatusPending
	default:
		return models.OrderStatusPartial
	}
}

// CreateStandalone persists a receipt that is not linked to any order and
// increments inventory for each line, under the same transactional guarantee
// as order-linked receipts.
func (s *Service) CreateStandalone(ctx context.Context, req StandaloneRequest) (*models.Receipt, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	now := s.now()
	lines := make([]models.ReceiptItem, 0, len(req.Items))
	for _, it := range req.Items {
		name := strings.TrimSpace(it.Name)
		if it.ItemID.IsZero() || name == "" {
			return nil, ErrInvalidItem
		}
		if !numeric.IsFinite(it.Quantity) || it.Quantity <= 0 {
			return nil, fmt.Errorf("item %s: %w", it.ItemID.Hex(), ErrInvalidQuantity)
		}

		unit := strings.ToLower(strings.TrimSpace(it.Unit))
		if unit == "" {
			unit = defaultUnit
		}
		qty := it.Quantity
		if s.units.IsIntegerUnit(unit) {
			if !numeric.IsWhole(qty) {
				return nil, fmt.Errorf("item %s unit %q: %w", it.ItemID.Hex(), unit, ErrInvalidIntegerQuantity)
			}
		} else {
			qty = numeric.RoundQty(qty)
		}

		lines = append(lines, models.ReceiptItem{
			ItemID:    it.ItemID,
			Name:      name,
			Quantity:  qty,
			Unit:      unit,
			UnitPrice: numeric.RoundQty(numeric.Coerce(it.UnitPrice, 0)),
		})
	}

	receivedAt := now
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	receipt := &models.Receipt{
		Items:      lines,
		ReceivedAt: receivedAt,
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.receipts.Insert(ctx, receipt); err != nil {
			return fmt.Errorf("insert receipt: %w", err)
		}
		for _, ln := range lines {
			if err := s.inventory.IncrementQuantity(ctx, ln.ItemID, ln.Quantity); err != nil {
				return fmt.Errorf("increment inventory %s: %w", ln.ItemID.Hex(), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("standalone receipt created", zap.Int("lines", len(lines)))
	return receipt, nil
}

// DeleteReceipt removes a receipt and reverts its inventory increments in one
// transaction. Order ledgers are intentionally left untouched, matching the
// reversal semantics of the receipt endpoint.
func (s *Service) DeleteReceipt(ctx context.Context, id primitive.ObjectID) error {
	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		receipt, err := s.receipts.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrReceiptNotFound
			}
			return fmt.Errorf("load receipt: %w", err)
		}

		for _, ln := range receipt.Items {
			delta := ln.Quantity
			if delta < 0 {
				delta = -delta
			}
			if err := s.inventory.IncrementQuantity(ctx, ln.ItemID, -delta); err != nil {
				return fmt.Errorf("revert inventory %s: %w", ln.ItemID.Hex(), err)
			}
		}

		if err := s.receipts.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete receipt: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("receipt deleted and inventory reverted", zap.String("receipt_id", id.Hex()))
	return nil
}
