package dto

// ApplyLeaveRequest represents a leave application
type ApplyLeaveRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason"`
}

// UpdateLeaveStatusRequest represents an administrative status transition
type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
