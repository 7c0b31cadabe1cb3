package booking

import (
	"fmt"
	"strings"

	"boxoffice/internal/domain"
)

const receiptSeparator = "---------------------------------------"

// renderReceipt produces the plain-text receipt for one finalized reservation:
// the reservation summary followed by the per-section cost rows. Sections with
// no seats are omitted from the cost block.
func renderReceipt(res *domain.Reservation, breakdown domain.PriceBreakdown) string {
	var b strings.Builder

	b.WriteString(receiptSeparator + "\n")
	b.WriteString("Receipt for Reservation:\n")
	b.WriteString("Confirmation Code:\n")
	b.WriteString(res.Confirmation + "\n")
	b.WriteString(res.Username + "\n")
	b.WriteString(res.Showtime.Format(domain.TimeSlotLayout) + "\n")
	b.WriteString("Number of seats reserved:\n")
	fmt.Fprintf(&b, "%d\n", res.SeatCount)
	b.WriteString("Seats Reserved:\n")
	b.WriteString(res.SeatList() + "\n")

	b.WriteString("Cost of Reservation:\n")
	switch breakdown.Discount {
	case domain.DiscountNight:
		b.WriteString("Discount applied: Discount Night Promotion\n")
	case domain.DiscountGroup:
		b.WriteString("Discount applied: Group Discount\n")
	}
	for _, item := range breakdown.Items {
		if item.Quantity == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s : %d x $%g = $%g\n", item.Section, item.Quantity, item.UnitPrice, item.Subtotal)
	}
	fmt.Fprintf(&b, "Grand Total: $%g\n", breakdown.GrandTotal)
	b.WriteString(receiptSeparator)

	return b.String()
}
