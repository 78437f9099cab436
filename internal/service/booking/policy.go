package booking

import "github.com/avdonin/skybooking/internal/domain"

// Policy is the single authority over booking status transitions. Both entry
// points — the customer payment upload and the admin decision — go through
// it, so there is one place deciding what a booking's next status is.
type Policy struct{}

// RealizeAdmin computes the committed status for an admin-requested change.
// The requested status is taken verbatim; setting a booking to its current
// status is a no-op and the second return is false.
func (Policy) RealizeAdmin(current, requested domain.BookingStatus) (domain.BookingStatus, bool) {
	if requested == current {
		return current, false
	}
	return requested, true
}

// RealizeEvidence computes the derived status when payment evidence is
// attached by the customer. Only a PENDING booking with evidence moves, to
// PENDING_PAYMENT; every other status stays put. Customers can never reach
// CONFIRMED, PAID, DECLINED or COMPLETED through this path.
func (Policy) RealizeEvidence(current domain.BookingStatus, hasEvidence bool) (domain.BookingStatus, bool) {
	if hasEvidence && current == domain.BookingStatusPending {
		return domain.BookingStatusPendingPayment, true
	}
	return current, false
}
