package repository

import "time"

// Kind tags an item as a goal purchase or a monthly bill. The store tolerates
// any combination of optional fields regardless of kind; which ones are
// meaningful is the caller's concern.
type Kind string

const (
	KindGoal Kind = "goal"
	KindBill Kind = "bill"
)

// Item represents an items row. For a bill with Installments > 1, PriceCents
// is the per-installment monthly amount, not the total.
type Item struct {
	ID             string
	Kind           Kind
	Name           string
	PriceCents     int64
	Link           *string
	Image          []byte
	Description    *string // bill only
	Installments   *int    // nil or 1 means a single charge
	InstallmentDay *int    // due day-of-month, 1-31, informational
	Purchased      bool    // for a bill: paid off / deactivated
	CreatedAt      time.Time
}

// Settings is the singleton settings row (id = 1).
type Settings struct {
	SavedCents  int64
	SalaryCents int64
}
