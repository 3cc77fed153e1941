package database

import (
	"math"
	"time"
)

// DateLayout is the wire format for leave request dates
const DateLayout = "2006-01-02"

// Role names
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Role classifies a user. One role has many users.
type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User represents an employee account
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	Address   string    `json:"address" gorm:"type:text"`
	RoleID    uint      `json:"roleId" gorm:"index;not null"`
	Role      Role      `json:"role" gorm:"foreignKey:RoleID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeaveStatus represents the state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Valid reports whether s is a known status value
func (s LeaveStatus) Valid() bool {
	return s == LeavePending || s == LeaveApproved || s == LeaveRejected
}

// Terminal reports whether s permits no further transition
func (s LeaveStatus) Terminal() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// LeaveRequest represents one leave application
type LeaveRequest struct {
	ID        uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint        `json:"userId" gorm:"index;not null"`
	StartDate time.Time   `json:"startDate" gorm:"not null"`
	EndDate   time.Time   `json:"endDate" gorm:"not null"`
	Reason    string      `json:"reason" gorm:"type:text"`
	Status    LeaveStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Days returns the inclusive day count covered by the request
func (r *LeaveRequest) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// UserLeave tracks the per-user leave balance. One record per user.
type UserLeave struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           uint      `json:"userId" gorm:"uniqueIndex;not null"`
	TotalWorkingDays int       `json:"totalWorkingDays" gorm:"not null"`
	UsedLeave        int       `json:"usedLeave" gorm:"not null;default:0"`
	AvailableLeave   int       `json:"availableLeave" gorm:"not null"`
	AttendancePerc   int       `json:"attendancePerc" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AttendancePercent derives the attendance percentage from working days and
// used leave: round((totalWorkingDays - usedLeave) * 100 / totalWorkingDays).
func AttendancePercent(totalWorkingDays, usedLeave int) int {
	if totalWorkingDays <= 0 {
		return 0
	}
	return int(math.Round(float64(totalWorkingDays-usedLeave) * 100 / float64(totalWorkingDays)))
}
