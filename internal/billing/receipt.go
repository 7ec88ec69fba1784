package billing

import (
	"fmt"
	"strings"

	"github.com/baxley/shopbook/internal/ledger"
)

const receiptRule = "========================================"
const receiptSep = "----------------------------------------"

// Receipt renders a completed transaction as printable text.
func Receipt(t ledger.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", receiptRule)
	fmt.Fprintf(&b, "           RECEIPT\n")
	fmt.Fprintf(&b, "%s\n", receiptRule)
	fmt.Fprintf(&b, "Transaction ID: %s\n", t.ID)
	fmt.Fprintf(&b, "Date: %s\n", t.Date)
	fmt.Fprintf(&b, "Customer: %s\n", t.CustomerID)
	fmt.Fprintf(&b, "%s\n", receiptSep)
	fmt.Fprintf(&b, "Items:\n")
	for i, it := range t.Items {
		fmt.Fprintf(&b, "%d. %s\n   %d x $%.2f = $%.2f\n",
			i+1, it.Name, it.Quantity, it.Price, it.Subtotal)
	}
	fmt.Fprintf(&b, "%s\n", receiptSep)
	fmt.Fprintf(&b, "Total: $%.2f\n", t.Total)
	fmt.Fprintf(&b, "Payment Method: %s\n", t.PaymentMethod)
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	fmt.Fprintf(&b, "%s\n", receiptRule)
	fmt.Fprintf(&b, "          Thank You!\n")
	fmt.Fprintf(&b, "%s\n", receiptRule)
	return b.String()
}
