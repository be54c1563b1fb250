package leave

import "time"

const (
	TypeAnnual   = "annual"
	TypeSick     = "sick"
	TypePersonal = "personal"
	TypeHalfDay  = "halfday"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Allowances is the fixed yearly allowance per leave type. Half days are
// counted per request, the rest in business days.
var Allowances = map[string]int{
	TypeAnnual:   20,
	TypeSick:     10,
	TypePersonal: 5,
	TypeHalfDay:  12,
}

type LeaveRequest struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	ApprovedByID string    `json:"approvedById,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Balance struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

func ValidType(leaveType string) bool {
	_, ok := Allowances[leaveType]
	return ok
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
