package ledger

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baxley/shopbook/internal/store"
)

// ProductFile is the snapshot file name for the product store.
const ProductFile = "products.dat"

// Product is one inventory item.
type Product struct {
	ID          int32
	Name        string
	Price       float64
	Quantity    int32
	Category    string
	Description string
}

// productCodec lays a Product out as 296 fixed bytes:
// id(4) name(50) price(8) quantity(4) category(30) description(200).
type productCodec struct{}

func (productCodec) Size() int {
	return 4 + store.NameWidth + 8 + 4 + store.CategoryWidth + store.DescriptionWidth
}

func (productCodec) AppendBinary(dst []byte, p Product) []byte {
	dst = store.AppendInt32(dst, p.ID)
	dst = store.AppendFixedString(dst, p.Name, store.NameWidth)
	dst = store.AppendFloat64(dst, p.Price)
	dst = store.AppendInt32(dst, p.Quantity)
	dst = store.AppendFixedString(dst, p.Category, store.CategoryWidth)
	dst = store.AppendFixedString(dst, p.Description, store.DescriptionWidth)
	return dst
}

func (productCodec) DecodeBinary(src []byte) (Product, error) {
	off := 0
	p := Product{}
	p.ID = store.Int32At(src, off)
	off += 4
	p.Name = store.FixedString(src, off, store.NameWidth)
	off += store.NameWidth
	p.Price = store.Float64At(src, off)
	off += 8
	p.Quantity = store.Int32At(src, off)
	off += 4
	p.Category = store.FixedString(src, off, store.CategoryWidth)
	off += store.CategoryWidth
	p.Description = store.FixedString(src, off, store.DescriptionWidth)
	return p, nil
}

// categoryCaser title-cases category names on input so that "electronics",
// "Electronics" and "ELECTRONICS" group as one category everywhere.
var categoryCaser = cases.Title(language.English)

// NormalizeCategory canonicalizes a category name for storage and grouping.
func NormalizeCategory(c string) string {
	return categoryCaser.String(strings.TrimSpace(c))
}

// ProductStore owns the product collection, kept sorted by id ascending.
type ProductStore struct {
	s *store.Store[Product, int32]
}

// NewProductStore creates an empty product store.
func NewProductStore() *ProductStore {
	return &ProductStore{
		s: store.New(store.Config[Product, int32]{
			Entity:  "product",
			Codec:   productCodec{},
			Key:     func(p Product) int32 { return p.ID },
			Ordered: true,
		}),
	}
}

func validateProduct(p Product) error {
	switch {
	case p.ID <= 0:
		return store.NewInvalidInputError("product", "id must be positive")
	case strings.TrimSpace(p.Name) == "":
		return store.NewInvalidInputError("product", "name is required")
	case p.Price < 0:
		return store.NewInvalidInputError("product", "price must not be negative")
	case p.Quantity < 0:
		return store.NewInvalidInputError("product", "quantity must not be negative")
	}
	return nil
}

// Add validates and inserts a new product.
func (ps *ProductStore) Add(p Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	p.Category = NormalizeCategory(p.Category)
	return ps.s.Insert(p)
}

// Get returns the product with the given id.
func (ps *ProductStore) Get(id int32) (Product, error) {
	i, ok := ps.s.FindByKey(id)
	if !ok {
		return Product{}, store.NewNotFoundError("product", fmt.Sprint(id))
	}
	return ps.s.Get(i)
}

// Update replaces the product with p.ID in place. The id itself never
// changes; that is enforced one level down.
func (ps *ProductStore) Update(p Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	i, ok := ps.s.FindByKey(p.ID)
	if !ok {
		return store.NewNotFoundError("product", fmt.Sprint(p.ID))
	}
	p.Category = NormalizeCategory(p.Category)
	return ps.s.Update(i, p)
}

// Delete removes the product with the given id.
func (ps *ProductStore) Delete(id int32) error {
	i, ok := ps.s.FindByKey(id)
	if !ok {
		return store.NewNotFoundError("product", fmt.Sprint(id))
	}
	return ps.s.DeleteAt(i)
}

// AdjustQuantity changes a product's stock by delta (negative to remove).
// The result is never allowed below zero.
func (ps *ProductStore) AdjustQuantity(id int32, delta int32) error {
	i, ok := ps.s.FindByKey(id)
	if !ok {
		return store.NewNotFoundError("product", fmt.Sprint(id))
	}
	p, err := ps.s.Get(i)
	if err != nil {
		return err
	}
	if p.Quantity+delta < 0 {
		return &store.StoreError{
			Code:    store.ErrCodeInsufficientStock,
			Message: fmt.Sprintf("stock %d cannot absorb %d", p.Quantity, delta),
			Entity:  "product",
			Key:     fmt.Sprint(id),
		}
	}
	p.Quantity += delta
	return ps.s.Update(i, p)
}

// All returns every product in id order.
func (ps *ProductStore) All() []Product {
	return ps.s.Records()
}

// Len returns the live product count.
func (ps *ProductStore) Len() int {
	return ps.s.Len()
}

// SearchByName returns products whose name contains q, case-insensitively.
func (ps *ProductStore) SearchByName(q string) []Product {
	q = strings.ToLower(q)
	var out []Product
	for _, p := range ps.s.Records() {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns products in the given category.
func (ps *ProductStore) ByCategory(category string) []Product {
	category = NormalizeCategory(category)
	var out []Product
	for _, p := range ps.s.Records() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct product categories in first-seen order.
func (ps *ProductStore) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range ps.s.Records() {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// LowStock returns products with quantity strictly below threshold.
func (ps *ProductStore) LowStock(threshold int32) []Product {
	var out []Product
	for _, p := range ps.s.Records() {
		if p.Quantity < threshold {
			out = append(out, p)
		}
	}
	return out
}

// ProductSort selects an ordering for SortedBy.
type ProductSort string

const (
	SortByID       ProductSort = "id"       // ascending (store order)
	SortByName     ProductSort = "name"     // ascending
	SortByPrice    ProductSort = "price"    // low to high
	SortByQuantity ProductSort = "quantity" // high to low
)

// SortedBy returns a sorted view of the products. The store itself stays
// in id order; only the returned copy is re-ordered.
func (ps *ProductStore) SortedBy(by ProductSort) ([]Product, error) {
	recs := ps.s.Records()
	switch by {
	case SortByID, "":
		// already id order
	case SortByName:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	case SortByPrice:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Price < recs[j].Price })
	case SortByQuantity:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Quantity > recs[j].Quantity })
	default:
		return nil, store.NewInvalidInputError("product", fmt.Sprintf("unknown sort %q", by))
	}
	return recs, nil
}

// Save persists the full store to its snapshot file under dir.
func (ps *ProductStore) Save(dir string) error {
	return ps.s.Save(storePath(dir, ProductFile))
}

// Load replaces the store contents from the snapshot file under dir.
func (ps *ProductStore) Load(dir string) error {
	return ps.s.Load(storePath(dir, ProductFile))
}
