package ledger

import (
	"strings"

	"github.com/baxley/shopbook/internal/store"
)

// FinancialFile is the snapshot file name for the financial record store.
const FinancialFile = "financial.dat"

// Financial record types.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// FinancialRecord is one ledger entry. The financial store is a pure
// append-only log: no key, no uniqueness, no edits.
type FinancialRecord struct {
	Date        string // DateLayout
	Category    string
	Amount      float64
	Type        string // TypeIncome or TypeExpense
	Description string
}

// financialCodec lays a FinancialRecord out as 268 fixed bytes:
// date(20) category(30) amount(8) type(10) description(200).
type financialCodec struct{}

func (financialCodec) Size() int {
	return store.DateWidth + store.CategoryWidth + 8 + store.TypeWidth + store.DescriptionWidth
}

func (financialCodec) AppendBinary(dst []byte, r FinancialRecord) []byte {
	dst = store.AppendFixedString(dst, r.Date, store.DateWidth)
	dst = store.AppendFixedString(dst, r.Category, store.CategoryWidth)
	dst = store.AppendFloat64(dst, r.Amount)
	dst = store.AppendFixedString(dst, r.Type, store.TypeWidth)
	dst = store.AppendFixedString(dst, r.Description, store.DescriptionWidth)
	return dst
}

func (financialCodec) DecodeBinary(src []byte) (FinancialRecord, error) {
	off := 0
	r := FinancialRecord{}
	r.Date = store.FixedString(src, off, store.DateWidth)
	off += store.DateWidth
	r.Category = store.FixedString(src, off, store.CategoryWidth)
	off += store.CategoryWidth
	r.Amount = store.Float64At(src, off)
	off += 8
	r.Type = store.FixedString(src, off, store.TypeWidth)
	off += store.TypeWidth
	r.Description = store.FixedString(src, off, store.DescriptionWidth)
	return r, nil
}

// FinancialStore owns the append-only financial log.
type FinancialStore struct {
	s *store.Store[FinancialRecord, string]
}

// NewFinancialStore creates an empty financial store.
func NewFinancialStore() *FinancialStore {
	return &FinancialStore{
		s: store.New(store.Config[FinancialRecord, string]{
			Entity: "financial",
			Codec:  financialCodec{},
		}),
	}
}

// Add validates and appends a financial record.
func (fs *FinancialStore) Add(r FinancialRecord) error {
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(r.Category) == "":
		return store.NewInvalidInputError("financial", "category is required")
	case r.Amount <= 0:
		return store.NewInvalidInputError("financial", "amount must be positive")
	case r.Type != TypeIncome && r.Type != TypeExpense:
		return store.NewInvalidInputError("financial", `type must be "Income" or "Expense"`)
	}
	r.Category = NormalizeCategory(r.Category)
	return fs.s.Insert(r)
}

// All returns every record in append order.
func (fs *FinancialStore) All() []FinancialRecord {
	return fs.s.Records()
}

// Len returns the live record count.
func (fs *FinancialStore) Len() int {
	return fs.s.Len()
}

// Filter returns records inside the inclusive date range, optionally
// restricted to one type. Empty arguments are open.
func (fs *FinancialStore) Filter(start, end, typ string) []FinancialRecord {
	var out []FinancialRecord
	for _, r := range fs.s.Records() {
		if !InDateRange(r.Date, start, end) {
			continue
		}
		if typ != "" && r.Type != typ {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Save persists the full store to its snapshot file under dir.
func (fs *FinancialStore) Save(dir string) error {
	return fs.s.Save(storePath(dir, FinancialFile))
}

// Load replaces the store contents from the snapshot file under dir.
func (fs *FinancialStore) Load(dir string) error {
	return fs.s.Load(storePath(dir, FinancialFile))
}
