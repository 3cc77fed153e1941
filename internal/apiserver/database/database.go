package database

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLeaveAlreadyFinalized is returned when a status transition is
	// attempted on a request that already left the pending state.
	ErrLeaveAlreadyFinalized = errors.New("leave request already finalized")

	// ErrBalanceNotFound is returned when an approval finds no leave
	// balance record for the requester.
	ErrBalanceNotFound = errors.New("leave balance not found")
)

// Database defines the methods for database operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByID gets a user by id, with its role preloaded.
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// GetUserByEmail gets a user by email, with its role preloaded.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user *User) error

	// DeleteUser deletes a user by id.
	DeleteUser(ctx context.Context, id uint) error

	// ListUsers gets all users with their roles preloaded.
	ListUsers(ctx context.Context) ([]*User, error)

	// GetRoleByName gets a role by its unique name.
	GetRoleByName(ctx context.Context, name string) (*Role, error)

	// CreateLeaveRequest creates a new leave request. Status is forced to pending.
	CreateLeaveRequest(ctx context.Context, req *LeaveRequest) error

	// GetLeaveRequest gets a leave request by id.
	GetLeaveRequest(ctx context.Context, id uint) (*LeaveRequest, error)

	// ListLeaveRequestsByUser gets all leave requests owned by a user.
	ListLeaveRequestsByUser(ctx context.Context, userID uint) ([]*LeaveRequest, error)

	// HasOverlappingLeave reports whether the user already has a pending or
	// approved request intersecting the [start, end] range.
	HasOverlappingLeave(ctx context.Context, userID uint, start, end time.Time) (bool, error)

	// UpdateLeaveRequestStatus performs the one-shot pending -> approved/rejected
	// transition as a single atomic unit. On approval the requester's balance is
	// debited and the attendance percentage recomputed in the same transaction.
	// Returns gorm.ErrRecordNotFound if the request is absent,
	// ErrLeaveAlreadyFinalized if it is no longer pending, and
	// ErrBalanceNotFound if the approval finds no balance record; in every
	// failure case no partial effect remains.
	UpdateLeaveRequestStatus(ctx context.Context, id uint, status LeaveStatus) (*LeaveRequest, error)

	// CreateUserLeave creates the balance record for a user.
	CreateUserLeave(ctx context.Context, balance *UserLeave) error

	// GetUserLeave gets the balance record owned by a user.
	GetUserLeave(ctx context.Context, userID uint) (*UserLeave, error)

	// UpdateUserLeave persists changes to a balance record.
	UpdateUserLeave(ctx context.Context, balance *UserLeave) error

	// Transaction runs fn inside a database transaction. The transaction is
	// carried through the context to the Database methods called within fn.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
