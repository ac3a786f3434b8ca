package borrow

import (
	"time"

	"assetdesk/internal/domain"
)

type SubmitRequest struct {
	ItemID             int64     `json:"item_id" binding:"required"`
	ExpectedReturnDate time.Time `json:"expected_return_date" binding:"required"`
	Purpose            string    `json:"purpose" binding:"required"`
	DepartmentID       int64     `json:"department_id" binding:"required"`
	SubDepartmentID    *int64    `json:"sub_department_id"`
	Notes              string    `json:"notes"`
}

type ReturnRequest struct {
	Condition string `json:"condition" binding:"required"`
}

// RequestView is a borrow request enriched for display: referenced names
// resolved and the derived status applied.
type RequestView struct {
	domain.BorrowRequest
	DisplayStatus domain.RequestStatus `json:"display_status"`
	ItemName      string               `json:"item_name,omitempty"`
	BorrowerName  string               `json:"borrower_name,omitempty"`
	ApproverName  string               `json:"approver_name,omitempty"`
}
