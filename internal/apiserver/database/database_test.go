package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/amoylab/leavehub/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) Database {
	t.Helper()
	tmp := t.TempDir()
	cfg := &config.DatabaseConfig{
		Type:   "sqlite",
		DBName: filepath.Join(tmp, "leavehub.db"),
	}
	db, err := NewSQLite(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func seedUser(t *testing.T, db Database, email string) *User {
	t.Helper()
	ctx := context.Background()
	role, err := db.GetRoleByName(ctx, RoleEmployee)
	require.NoError(t, err)

	user := &User{
		Email:    email,
		Password: "hashed",
		Name:     "Test User",
		RoleID:   role.ID,
	}
	require.NoError(t, db.CreateUser(ctx, user))
	return user
}

func seedBalance(t *testing.T, db Database, userID uint, total, used, available int) *UserLeave {
	t.Helper()
	balance := &UserLeave{
		UserID:           userID,
		TotalWorkingDays: total,
		UsedLeave:        used,
		AvailableLeave:   available,
		AttendancePerc:   AttendancePercent(total, used),
	}
	require.NoError(t, db.CreateUserLeave(context.Background(), balance))
	return balance
}

func TestRolesSeededOnOpen(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	for _, name := range []string{RoleAdmin, RoleEmployee} {
		role, err := db.GetRoleByName(ctx, name)
		assert.NoError(t, err)
		assert.Equal(t, name, role.Name)
	}
}

func TestUserCRUD(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")

	got, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, RoleEmployee, got.Role.Name)

	got, err = db.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got.Name = "Alice"
	require.NoError(t, db.UpdateUser(ctx, got))
	got, err = db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLeaveRequestDays(t *testing.T) {
	req := &LeaveRequest{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, req.Days())

	// Single-day request counts as one day
	req.EndDate = req.StartDate
	assert.Equal(t, 1, req.Days())
}

func TestAttendancePercent(t *testing.T) {
	assert.Equal(t, 100, AttendancePercent(250, 0))
	assert.Equal(t, 95, AttendancePercent(250, 13))
	assert.Equal(t, 96, AttendancePercent(250, 10))
	assert.Equal(t, 0, AttendancePercent(0, 5))
}

func TestCreateLeaveRequestForcesPending(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "bob@example.com")

	req := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-03-04"),
		EndDate:   mustDate(t, "2024-03-06"),
		Reason:    "vacation",
		Status:    LeaveApproved, // must be ignored
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, req))

	got, err := db.GetLeaveRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, LeavePending, got.Status)
}

func TestHasOverlappingLeave(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "carol@example.com")

	base := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-05-10"),
		EndDate:   mustDate(t, "2024-05-15"),
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, base))

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside", "2024-05-11", "2024-05-12", true},
		{"touching start", "2024-05-08", "2024-05-10", true},
		{"touching end", "2024-05-15", "2024-05-20", true},
		{"covering", "2024-05-01", "2024-05-31", true},
		{"before", "2024-05-01", "2024-05-09", false},
		{"after", "2024-05-16", "2024-05-20", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.HasOverlappingLeave(ctx, user.ID, mustDate(t, tc.start), mustDate(t, tc.end))
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	// Other users are not affected
	other := seedUser(t, db, "dave@example.com")
	got, err := db.HasOverlappingLeave(ctx, other.ID, mustDate(t, "2024-05-11"), mustDate(t, "2024-05-12"))
	assert.NoError(t, err)
	assert.False(t, got)

	// Rejected requests don't block the range
	_, err = db.UpdateLeaveRequestStatus(ctx, base.ID, LeaveRejected)
	require.NoError(t, err)
	got, err = db.HasOverlappingLeave(ctx, user.ID, mustDate(t, "2024-05-11"), mustDate(t, "2024-05-12"))
	assert.NoError(t, err)
	assert.False(t, got)
}

func TestApproveLeaveDebitsBalance(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "erin@example.com")
	seedBalance(t, db, user.ID, 250, 10, 20)

	req := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-01-01"),
		EndDate:   mustDate(t, "2024-01-03"),
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, req))

	got, err := db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveApproved)
	require.NoError(t, err)
	assert.Equal(t, LeaveApproved, got.Status)

	balance, err := db.GetUserLeave(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, balance.UsedLeave)
	assert.Equal(t, 17, balance.AvailableLeave)
	assert.Equal(t, 95, balance.AttendancePerc)
}

func TestRejectLeaveKeepsBalance(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "frank@example.com")
	seedBalance(t, db, user.ID, 250, 10, 20)

	req := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-01-01"),
		EndDate:   mustDate(t, "2024-01-03"),
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, req))

	got, err := db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveRejected)
	require.NoError(t, err)
	assert.Equal(t, LeaveRejected, got.Status)

	balance, err := db.GetUserLeave(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance.UsedLeave)
	assert.Equal(t, 20, balance.AvailableLeave)
	assert.Equal(t, 96, balance.AttendancePerc)
}

func TestUpdateLeaveStatusOneShot(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "grace@example.com")
	seedBalance(t, db, user.ID, 250, 0, 30)

	req := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-02-05"),
		EndDate:   mustDate(t, "2024-02-07"),
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, req))

	_, err := db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveApproved)
	require.NoError(t, err)

	// A second transition of either kind is refused
	_, err = db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveApproved)
	assert.ErrorIs(t, err, ErrLeaveAlreadyFinalized)
	_, err = db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveRejected)
	assert.ErrorIs(t, err, ErrLeaveAlreadyFinalized)

	// The balance was debited exactly once
	balance, err := db.GetUserLeave(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, balance.UsedLeave)
	assert.Equal(t, 27, balance.AvailableLeave)
}

func TestUpdateLeaveStatusMissingRequest(t *testing.T) {
	db := newSQLiteDB(t)

	_, err := db.UpdateLeaveRequestStatus(context.Background(), 9999, LeaveApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApproveWithoutBalanceRollsBack(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "henry@example.com")

	req := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-06-01"),
		EndDate:   mustDate(t, "2024-06-02"),
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, req))

	_, err := db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveApproved)
	assert.ErrorIs(t, err, ErrBalanceNotFound)

	// The status write was rolled back with the failed approval
	got, err := db.GetLeaveRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, LeavePending, got.Status)
}

func TestConcurrentApprovalsSingleWinner(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "iris@example.com")
	seedBalance(t, db, user.ID, 250, 0, 30)

	req := &LeaveRequest{
		UserID:    user.ID,
		StartDate: mustDate(t, "2024-07-01"),
		EndDate:   mustDate(t, "2024-07-05"),
	}
	require.NoError(t, db.CreateLeaveRequest(ctx, req))

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Retry transient driver contention so every worker observes
			// the final outcome of the race.
			for {
				_, err := db.UpdateLeaveRequestStatus(ctx, req.ID, LeaveApproved)
				if err == nil || errors.Is(err, ErrLeaveAlreadyFinalized) {
					results <- err
					return
				}
				time.Sleep(5 * time.Millisecond)
			}
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, losses)

	balance, err := db.GetUserLeave(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.UsedLeave)
	assert.Equal(t, 25, balance.AvailableLeave)
	assert.Equal(t, 98, balance.AttendancePerc)
}

func TestTransactionRollsBackAllWrites(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()
	role, err := db.GetRoleByName(ctx, RoleEmployee)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.Transaction(ctx, func(ctx context.Context) error {
		user := &User{Email: "jane@example.com", Password: "hashed", RoleID: role.ID}
		if err := db.CreateUser(ctx, user); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = db.GetUserByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInitSuperAdmin(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	admin := &config.SuperAdminConfig{Email: "admin@example.com", Password: "secret"}
	leave := &config.LeaveConfig{TotalWorkingDays: 250, AnnualLeaveDays: 30}

	require.NoError(t, InitSuperAdmin(ctx, db, admin, leave))

	user, err := db.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role.Name)
	assert.NotEqual(t, "secret", user.Password) // stored hashed

	balance, err := db.GetUserLeave(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, balance.AvailableLeave)
	assert.Equal(t, 100, balance.AttendancePerc)

	// Second run is a no-op
	require.NoError(t, InitSuperAdmin(ctx, db, admin, leave))
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
