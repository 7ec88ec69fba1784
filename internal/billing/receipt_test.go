package billing

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/baxley/shopbook/internal/ledger"
)

func TestReceiptGolden(t *testing.T) {
	txn := ledger.Transaction{
		ID:         "TXN-20240210143005",
		Date:       "2024-02-10 14:30:05",
		CustomerID: "7",
		Items: []ledger.LineItem{
			{ProductID: 1, Name: "USB Cable", Price: 4.50, Quantity: 2, Subtotal: 9.00},
			{ProductID: 3, Name: "Mouse", Price: 12.00, Quantity: 1, Subtotal: 12.00},
		},
		Total:         21.00,
		PaymentMethod: "Cash",
		Status:        ledger.StatusCompleted,
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "receipt", []byte(Receipt(txn)))
}
