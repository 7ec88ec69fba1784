package billing

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/baxley/shopbook/internal/ledger"
)

// Workflow errors. Product-level failures (unknown id, insufficient stock)
// surface as store.StoreError from the product store instead.
var (
	// ErrNoOpenTransaction is returned by operations that require an open
	// transaction when there is none.
	ErrNoOpenTransaction = errors.New("no open transaction")

	// ErrOpenTransactionExists is returned by Create while a transaction
	// is already open. Complete or abort it first.
	ErrOpenTransactionExists = errors.New("a transaction is already open")

	// ErrBillFull is returned when a bill already has the maximum number
	// of line items.
	ErrBillFull = fmt.Errorf("bill already has %d items", ledger.MaxLineItems)

	// ErrEmptyBill is returned by Complete when the bill has no items.
	ErrEmptyBill = errors.New("bill has no items")
)

// Defaults applied by Complete when the caller leaves fields blank.
const (
	DefaultCustomerID    = "Anonymous"
	DefaultPaymentMethod = "Cash"
)

// Clock supplies timestamps for transaction ids and dates. Injected so
// tests produce stable ids.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall time.
func (SystemClock) Now() time.Time { return time.Now() }

// TokenSource generates session tokens for open transactions.
type TokenSource func() string

// UUIDv7Token is the production TokenSource.
func UUIDv7Token() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Register drives the billing workflow: at most one open transaction at a
// time, accumulating line items against the product store and appending a
// finalized record to the transaction store on completion.
//
// Stock is decremented the moment an item is added, not at completion, so
// an open bill holds a reservation against inventory. Abort releases the
// reservation; a process killed mid-session leaks it (known limitation,
// the snapshot on disk already reflects the decrement).
type Register struct {
	products *ledger.ProductStore
	txns     *ledger.TransactionStore
	dataDir  string
	clock    Clock
	token    TokenSource
	log      *slog.Logger

	open *openBill
}

// openBill is the single in-progress transaction a session may hold.
type openBill struct {
	session string // UUIDv7, correlates log lines; never persisted
	id      string // TXN-YYYYMMDDHHMMSS, the persisted key
	date    string
	items   []ledger.LineItem
}

// Option configures a Register.
type Option func(*Register)

// WithClock overrides the wall clock (for testing).
func WithClock(c Clock) Option {
	return func(r *Register) { r.clock = c }
}

// WithTokenSource overrides the session token generator (for testing).
func WithTokenSource(ts TokenSource) Option {
	return func(r *Register) { r.token = ts }
}

// NewRegister creates a register over the given stores. dataDir is where
// the stores persist after each mutation.
func NewRegister(products *ledger.ProductStore, txns *ledger.TransactionStore, dataDir string, opts ...Option) *Register {
	r := &Register{
		products: products,
		txns:     txns,
		dataDir:  dataDir,
		clock:    SystemClock{},
		token:    UUIDv7Token,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HasOpen reports whether a transaction is currently open.
func (r *Register) HasOpen() bool {
	return r.open != nil
}

// OpenID returns the id of the open transaction, or "" if none.
func (r *Register) OpenID() string {
	if r.open == nil {
		return ""
	}
	return r.open.id
}

// Create opens a new transaction with a time-derived id and zero items.
// Only legal when no transaction is open.
func (r *Register) Create() (string, error) {
	if r.open != nil {
		return "", ErrOpenTransactionExists
	}
	now := r.clock.Now()
	r.open = &openBill{
		session: r.token(),
		id:      "TXN-" + now.Format("20060102150405"),
		date:    now.Format(ledger.DateTimeLayout),
	}
	r.log.Info("transaction opened", "session", r.open.session, "txn", r.open.id)
	return r.open.id, nil
}

// AddItem adds quantity units of the product to the open transaction,
// snapshotting the product's current name and price. If the product is
// already on the bill the quantities merge into one line. Stock is
// decremented immediately and the product store persisted.
func (r *Register) AddItem(productID int32, quantity int32) error {
	if r.open == nil {
		return ErrNoOpenTransaction
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	p, err := r.products.Get(productID)
	if err != nil {
		return err
	}
	// AdjustQuantity rejects the add when stock is short.
	if err := r.products.AdjustQuantity(productID, -quantity); err != nil {
		return err
	}

	merged := false
	for i := range r.open.items {
		if r.open.items[i].ProductID == productID {
			r.open.items[i].Quantity += quantity
			r.open.items[i].Subtotal = ledger.ItemSubtotal(r.open.items[i].Price, r.open.items[i].Quantity)
			merged = true
			break
		}
	}
	if !merged {
		if len(r.open.items) >= ledger.MaxLineItems {
			// Undo the reservation taken above.
			if restoreErr := r.products.AdjustQuantity(productID, quantity); restoreErr != nil {
				r.log.Error("failed to restore stock after full bill", "session", r.open.session, "error", restoreErr)
			}
			return ErrBillFull
		}
		r.open.items = append(r.open.items, ledger.LineItem{
			ProductID: productID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  quantity,
			Subtotal:  ledger.ItemSubtotal(p.Price, quantity),
		})
	}

	if err := r.products.Save(r.dataDir); err != nil {
		return err
	}
	r.log.Debug("item added", "session", r.open.session, "product", productID, "quantity", quantity)
	return nil
}

// RemoveItem removes the line at index from the open transaction and
// restores its full quantity back to product stock.
func (r *Register) RemoveItem(index int) error {
	if r.open == nil {
		return ErrNoOpenTransaction
	}
	if index < 0 || index >= len(r.open.items) {
		return fmt.Errorf("item index %d out of range [0, %d)", index, len(r.open.items))
	}

	it := r.open.items[index]
	// The product may have been deleted since it was added; the removed
	// line still goes away, the stock just has nowhere to return to.
	if err := r.products.AdjustQuantity(it.ProductID, it.Quantity); err != nil {
		r.log.Warn("could not restore stock for removed item",
			"session", r.open.session, "product", it.ProductID, "error", err)
	}
	r.open.items = append(r.open.items[:index], r.open.items[index+1:]...)

	if err := r.products.Save(r.dataDir); err != nil {
		return err
	}
	r.log.Debug("item removed", "session", r.open.session, "product", it.ProductID)
	return nil
}

// Items returns a copy of the open transaction's line items.
func (r *Register) Items() []ledger.LineItem {
	if r.open == nil {
		return nil
	}
	out := make([]ledger.LineItem, len(r.open.items))
	copy(out, r.open.items)
	return out
}

// Total returns the running total of the open transaction.
func (r *Register) Total() float64 {
	if r.open == nil {
		return 0
	}
	return ledger.SumSubtotals(r.open.items)
}

// Complete finalizes the open transaction: recomputes the total from
// current subtotals, appends the record to the transaction store, persists
// it, and closes the session. Blank customerID and paymentMethod default
// to Anonymous and Cash.
func (r *Register) Complete(customerID, paymentMethod string) (ledger.Transaction, error) {
	if r.open == nil {
		return ledger.Transaction{}, ErrNoOpenTransaction
	}
	if len(r.open.items) == 0 {
		return ledger.Transaction{}, ErrEmptyBill
	}
	if customerID == "" {
		customerID = DefaultCustomerID
	}
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	txn := ledger.Transaction{
		ID:            r.open.id,
		Date:          r.open.date,
		CustomerID:    customerID,
		Items:         r.Items(),
		Total:         ledger.SumSubtotals(r.open.items),
		PaymentMethod: paymentMethod,
		Status:        ledger.StatusCompleted,
	}
	if err := r.txns.Append(txn); err != nil {
		return ledger.Transaction{}, err
	}
	if err := r.txns.Save(r.dataDir); err != nil {
		// Back out the in-memory append so the session can retry
		// without tripping the duplicate-id check.
		if rmErr := r.txns.Remove(txn.ID); rmErr != nil {
			r.log.Warn("could not back out unsaved transaction",
				"txn", txn.ID, "error", rmErr)
		}
		return ledger.Transaction{}, err
	}

	r.log.Info("transaction completed",
		"session", r.open.session, "txn", txn.ID, "total", txn.Total, "items", len(txn.Items))
	r.open = nil
	return txn, nil
}

// Abort discards the open transaction and returns every reserved quantity
// back to product stock. This is the explicit release path for the
// reservation AddItem takes.
func (r *Register) Abort() error {
	if r.open == nil {
		return ErrNoOpenTransaction
	}
	for _, it := range r.open.items {
		if err := r.products.AdjustQuantity(it.ProductID, it.Quantity); err != nil {
			r.log.Warn("could not restore stock on abort",
				"session", r.open.session, "product", it.ProductID, "error", err)
		}
	}
	if err := r.products.Save(r.dataDir); err != nil {
		return err
	}
	r.log.Info("transaction aborted", "session", r.open.session, "txn", r.open.id)
	r.open = nil
	return nil
}
