package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestActive   RequestStatus = "active"
	RequestRejected RequestStatus = "rejected"
	RequestReturned RequestStatus = "returned"

	// RequestOverdue is a display-only projection of an active request whose
	// expected return date has passed. It is never written to storage.
	RequestOverdue RequestStatus = "overdue"
)

type BorrowRequest struct {
	ID                 int64          `json:"id"`
	ItemID             int64          `json:"item_id"`
	BorrowerID         int64          `json:"borrower_id"`
	DepartmentID       int64          `json:"department_id"`
	SubDepartmentID    *int64         `json:"sub_department_id,omitempty"`
	RequestedDate      time.Time      `json:"requested_date"`
	ExpectedReturnDate time.Time      `json:"expected_return_date"`
	ActualReturnDate   *time.Time     `json:"actual_return_date,omitempty"`
	Status             RequestStatus  `json:"status"`
	Purpose            string         `json:"purpose"`
	ApprovedBy         *int64         `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time     `json:"approved_at,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	ReturnCondition    *ItemCondition `json:"return_condition,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// EffectiveStatus resolves the display status of a request at a point in
// time. Every read site (request views, dashboard, reports) must go through
// this instead of re-deriving the overdue predicate.
func EffectiveStatus(status RequestStatus, expectedReturn time.Time, now time.Time) RequestStatus {
	if status == RequestActive && now.After(expectedReturn) {
		return RequestOverdue
	}
	return status
}

// DisplayStatus is EffectiveStatus applied to the request itself.
func (r *BorrowRequest) DisplayStatus(now time.Time) RequestStatus {
	return EffectiveStatus(r.Status, r.ExpectedReturnDate, now)
}

// IsOverdue reports whether an active request has passed its expected return date.
func (r *BorrowRequest) IsOverdue(now time.Time) bool {
	return r.DisplayStatus(now) == RequestOverdue
}
