package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/baxley/shopbook/internal/store"
)

// TransactionFile is the snapshot file name for the transaction store.
const TransactionFile = "transactions.dat"

// MaxLineItems caps the items on a single transaction. The snapshot layout
// always reserves this many item slots per record.
const MaxLineItems = 20

// StatusCompleted is the only terminal transaction status. Transactions are
// appended at completion time and never mutated afterwards.
const StatusCompleted = "Completed"

// LineItem is a product-quantity-price tuple embedded in a transaction.
// Name and price are snapshots taken at add time.
type LineItem struct {
	ProductID int32
	Name      string
	Price     float64
	Quantity  int32
	Subtotal  float64
}

// Transaction is one completed sale.
type Transaction struct {
	ID            string
	Date          string // DateTimeLayout
	CustomerID    string
	Items         []LineItem // at most MaxLineItems
	Total         float64
	PaymentMethod string
	Status        string
}

// ItemSubtotal computes price times quantity with decimal arithmetic.
func ItemSubtotal(price float64, quantity int32) float64 {
	sub := decimal.NewFromFloat(price).Mul(decimal.NewFromInt32(quantity))
	return sub.InexactFloat64()
}

// SumSubtotals totals line items with decimal arithmetic so repeated
// float additions cannot drift from the displayed two-decimal amounts.
func SumSubtotals(items []LineItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Subtotal))
	}
	return total.InexactFloat64()
}

const lineItemSize = 4 + store.NameWidth + 8 + 4 + 8 // 74

// transactionCodec lays a Transaction out as 1592 fixed bytes:
// id(20) date(20) customerId(20) items(20x74) itemCount(4) total(8)
// paymentMethod(20) status(20). Unused item slots are zero bytes.
type transactionCodec struct{}

func (transactionCodec) Size() int {
	return store.IDWidth + store.DateWidth + store.IDWidth +
		MaxLineItems*lineItemSize + 4 + 8 + store.PaymentWidth + store.StatusWidth
}

func (transactionCodec) AppendBinary(dst []byte, t Transaction) []byte {
	dst = store.AppendFixedString(dst, t.ID, store.IDWidth)
	dst = store.AppendFixedString(dst, t.Date, store.DateWidth)
	dst = store.AppendFixedString(dst, t.CustomerID, store.IDWidth)
	for i := 0; i < MaxLineItems; i++ {
		var it LineItem
		if i < len(t.Items) {
			it = t.Items[i]
		}
		dst = store.AppendInt32(dst, it.ProductID)
		dst = store.AppendFixedString(dst, it.Name, store.NameWidth)
		dst = store.AppendFloat64(dst, it.Price)
		dst = store.AppendInt32(dst, it.Quantity)
		dst = store.AppendFloat64(dst, it.Subtotal)
	}
	count := len(t.Items)
	if count > MaxLineItems {
		count = MaxLineItems
	}
	dst = store.AppendInt32(dst, int32(count))
	dst = store.AppendFloat64(dst, t.Total)
	dst = store.AppendFixedString(dst, t.PaymentMethod, store.PaymentWidth)
	dst = store.AppendFixedString(dst, t.Status, store.StatusWidth)
	return dst
}

func (c transactionCodec) DecodeBinary(src []byte) (Transaction, error) {
	off := 0
	t := Transaction{}
	t.ID = store.FixedString(src, off, store.IDWidth)
	off += store.IDWidth
	t.Date = store.FixedString(src, off, store.DateWidth)
	off += store.DateWidth
	t.CustomerID = store.FixedString(src, off, store.IDWidth)
	off += store.IDWidth

	itemsOff := off
	off += MaxLineItems * lineItemSize
	count := int(store.Int32At(src, off))
	off += 4
	if count < 0 || count > MaxLineItems {
		return Transaction{}, store.NewCorruptStoreError("transaction", "item count out of range")
	}
	t.Items = make([]LineItem, 0, count)
	for i := 0; i < count; i++ {
		o := itemsOff + i*lineItemSize
		it := LineItem{}
		it.ProductID = store.Int32At(src, o)
		o += 4
		it.Name = store.FixedString(src, o, store.NameWidth)
		o += store.NameWidth
		it.Price = store.Float64At(src, o)
		o += 8
		it.Quantity = store.Int32At(src, o)
		o += 4
		it.Subtotal = store.Float64At(src, o)
		t.Items = append(t.Items, it)
	}

	t.Total = store.Float64At(src, off)
	off += 8
	t.PaymentMethod = store.FixedString(src, off, store.PaymentWidth)
	off += store.PaymentWidth
	t.Status = store.FixedString(src, off, store.StatusWidth)
	return t, nil
}

// TransactionStore owns the completed-transaction log, keyed by string id
// in completion order (unordered, linear lookup).
type TransactionStore struct {
	s *store.Store[Transaction, string]
}

// NewTransactionStore creates an empty transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		s: store.New(store.Config[Transaction, string]{
			Entity: "transaction",
			Codec:  transactionCodec{},
			Key:    func(t Transaction) string { return t.ID },
		}),
	}
}

// Append adds a completed transaction to the log.
func (ts *TransactionStore) Append(t Transaction) error {
	return ts.s.Insert(t)
}

// Get returns the transaction with the given id.
func (ts *TransactionStore) Get(id string) (Transaction, error) {
	i, ok := ts.s.FindByKey(id)
	if !ok {
		return Transaction{}, store.NewNotFoundError("transaction", id)
	}
	return ts.s.Get(i)
}

// Remove deletes the transaction with the given id. The history is
// append-only in normal operation; this backs out an append whose
// snapshot save failed.
func (ts *TransactionStore) Remove(id string) error {
	i, ok := ts.s.FindByKey(id)
	if !ok {
		return store.NewNotFoundError("transaction", id)
	}
	return ts.s.DeleteAt(i)
}

// All returns every transaction in completion order.
func (ts *TransactionStore) All() []Transaction {
	return ts.s.Records()
}

// Len returns the live transaction count.
func (ts *TransactionStore) Len() int {
	return ts.s.Len()
}

// Filter returns completed transactions inside the inclusive date range,
// optionally restricted to one payment method. Empty arguments are open.
func (ts *TransactionStore) Filter(start, end, paymentMethod string) []Transaction {
	var out []Transaction
	for _, t := range ts.s.Records() {
		if t.Status != StatusCompleted {
			continue
		}
		if !InDateRange(t.Date, start, end) {
			continue
		}
		if paymentMethod != "" && t.PaymentMethod != paymentMethod {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Save persists the full store to its snapshot file under dir.
func (ts *TransactionStore) Save(dir string) error {
	return ts.s.Save(storePath(dir, TransactionFile))
}

// Load replaces the store contents from the snapshot file under dir.
func (ts *TransactionStore) Load(dir string) error {
	return ts.s.Load(storePath(dir, TransactionFile))
}
