package domain

// standardTransitions is the set of transitions the normal booking flow
// produces. The key is the current status, the value the statuses reachable
// from it. The admin surface may set a booking to any status regardless of
// this table; transitions outside it are flagged as forced in the event
// stream rather than rejected.
var standardTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending: {
		BookingStatusPendingPayment,
		BookingStatusConfirmed,
		BookingStatusDeclined,
	},
	BookingStatusPendingPayment: {
		BookingStatusPaid,
		BookingStatusDeclined,
	},
	BookingStatusConfirmed: {
		BookingStatusCompleted,
	},
	BookingStatusPaid: {
		BookingStatusCompleted,
	},
	BookingStatusDeclined:  {},
	BookingStatusCompleted: {},
}

// IsStandardTransition reports whether from -> to appears in the normal
// booking flow.
func IsStandardTransition(from, to BookingStatus) bool {
	for _, next := range standardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
