package ledger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/baxley/shopbook/internal/store"
)

// CustomerFile is the snapshot file name for the customer store.
const CustomerFile = "customers.dat"

func storePath(dir, file string) string {
	return filepath.Join(dir, file)
}

// Customer is one customer record.
type Customer struct {
	ID      int32
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// customerCodec lays a Customer out as 419 fixed bytes:
// id(4) name(50) phone(15) email(50) address(100) notes(200).
type customerCodec struct{}

func (customerCodec) Size() int {
	return 4 + store.NameWidth + store.PhoneWidth + store.EmailWidth + store.AddressWidth + store.NotesWidth
}

func (customerCodec) AppendBinary(dst []byte, c Customer) []byte {
	dst = store.AppendInt32(dst, c.ID)
	dst = store.AppendFixedString(dst, c.Name, store.NameWidth)
	dst = store.AppendFixedString(dst, c.Phone, store.PhoneWidth)
	dst = store.AppendFixedString(dst, c.Email, store.EmailWidth)
	dst = store.AppendFixedString(dst, c.Address, store.AddressWidth)
	dst = store.AppendFixedString(dst, c.Notes, store.NotesWidth)
	return dst
}

func (customerCodec) DecodeBinary(src []byte) (Customer, error) {
	off := 0
	c := Customer{}
	c.ID = store.Int32At(src, off)
	off += 4
	c.Name = store.FixedString(src, off, store.NameWidth)
	off += store.NameWidth
	c.Phone = store.FixedString(src, off, store.PhoneWidth)
	off += store.PhoneWidth
	c.Email = store.FixedString(src, off, store.EmailWidth)
	off += store.EmailWidth
	c.Address = store.FixedString(src, off, store.AddressWidth)
	off += store.AddressWidth
	c.Notes = store.FixedString(src, off, store.NotesWidth)
	return c, nil
}

// CustomerStore owns the customer collection, kept sorted by id ascending
// so lookups can binary search.
type CustomerStore struct {
	s *store.Store[Customer, int32]
}

// NewCustomerStore creates an empty customer store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		s: store.New(store.Config[Customer, int32]{
			Entity:  "customer",
			Codec:   customerCodec{},
			Key:     func(c Customer) int32 { return c.ID },
			Ordered: true,
		}),
	}
}

func validateCustomer(c Customer) error {
	switch {
	case c.ID <= 0:
		return store.NewInvalidInputError("customer", "id must be positive")
	case strings.TrimSpace(c.Name) == "":
		return store.NewInvalidInputError("customer", "name is required")
	}
	return nil
}

// Add validates and inserts a new customer.
func (cs *CustomerStore) Add(c Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	return cs.s.Insert(c)
}

// Get returns the customer with the given id.
func (cs *CustomerStore) Get(id int32) (Customer, error) {
	i, ok := cs.s.FindByKey(id)
	if !ok {
		return Customer{}, store.NewNotFoundError("customer", fmt.Sprint(id))
	}
	return cs.s.Get(i)
}

// Update replaces the customer with c.ID in place.
func (cs *CustomerStore) Update(c Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	i, ok := cs.s.FindByKey(c.ID)
	if !ok {
		return store.NewNotFoundError("customer", fmt.Sprint(c.ID))
	}
	return cs.s.Update(i, c)
}

// Delete removes the customer with the given id.
func (cs *CustomerStore) Delete(id int32) error {
	i, ok := cs.s.FindByKey(id)
	if !ok {
		return store.NewNotFoundError("customer", fmt.Sprint(id))
	}
	return cs.s.DeleteAt(i)
}

// All returns every customer in id order.
func (cs *CustomerStore) All() []Customer {
	return cs.s.Records()
}

// Len returns the live customer count.
func (cs *CustomerStore) Len() int {
	return cs.s.Len()
}

// SearchByName returns customers whose name contains q, case-insensitively.
func (cs *CustomerStore) SearchByName(q string) []Customer {
	q = strings.ToLower(q)
	var out []Customer
	for _, c := range cs.s.Records() {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// CustomerSort selects an ordering for SortedBy.
type CustomerSort string

const (
	CustomerSortByID   CustomerSort = "id"   // ascending (store order)
	CustomerSortByName CustomerSort = "name" // ascending
)

// SortedBy returns a sorted view of the customers. The store itself stays
// in id order; only the returned copy is re-ordered.
func (cs *CustomerStore) SortedBy(by CustomerSort) ([]Customer, error) {
	recs := cs.s.Records()
	switch by {
	case CustomerSortByID, "":
		// already id order
	case CustomerSortByName:
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	default:
		return nil, store.NewInvalidInputError("customer", fmt.Sprintf("unknown sort %q", by))
	}
	return recs, nil
}

// Save persists the full store to its snapshot file under dir.
func (cs *CustomerStore) Save(dir string) error {
	return cs.s.Save(storePath(dir, CustomerFile))
}

// Load replaces the store contents from the snapshot file under dir.
func (cs *CustomerStore) Load(dir string) error {
	return cs.s.Load(storePath(dir, CustomerFile))
}
