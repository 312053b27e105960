package booking

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusConfirmed  Status = "confirmed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled,
		StatusInProgress, StatusCompleted, StatusConfirmed:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// HoldsDates reports whether a booking in this status occupies its date range.
func (s Status) HoldsDates() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

// LedgerCommitted reports whether the booking's days were marked booked in the ledger.
func (s Status) LedgerCommitted() bool {
	switch s {
	case StatusAccepted, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

// ActiveStatuses is the set used by conflict checks.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAccepted, StatusConfirmed, StatusInProgress}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid
}
