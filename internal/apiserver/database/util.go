package database

import (
	"context"
	"errors"
	"time"

	"github.com/amoylab/leavehub/internal/common/config"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ensureRoles creates the built-in roles if they don't exist
func ensureRoles(db *gorm.DB) error {
	for _, name := range []string{RoleAdmin, RoleEmployee} {
		role := Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// updateLeaveRequestStatus performs the one-shot status transition and, on
// approval, the balance mutation, as a single transaction. The conditional
// update on the status column is the concurrency guard: of two racing
// approvals only one matches the pending row, the other observes
// ErrLeaveAlreadyFinalized.
func updateLeaveRequestStatus(ctx context.Context, db *gorm.DB, id uint, status LeaveStatus) (*LeaveRequest, error) {
	var req LeaveRequest
	err := getDBFromContext(ctx, db).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, id).Error; err != nil {
			return err
		}

		// Transition lands only if the request is still pending.
		res := tx.Model(&LeaveRequest{}).
			Where("id = ? AND status = ?", id, LeavePending).
			Updates(map[string]any{"status": status, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLeaveAlreadyFinalized
		}

		if status == LeaveApproved {
			days := req.Days()
			// Balance deltas and the attendance recomputation are expressed
			// against pre-update column values so the statement stays
			// deterministic across drivers.
			bres := tx.Model(&UserLeave{}).
				Where("user_id = ?", req.UserID).
				Updates(map[string]any{
					"attendance_perc": gorm.Expr("ROUND((total_working_days - (used_leave + ?)) * 100.0 / total_working_days)", days),
					"available_leave": gorm.Expr("available_leave - ?", days),
					"used_leave":      gorm.Expr("used_leave + ?", days),
					"updated_at":      time.Now(),
				})
			if bres.Error != nil {
				return bres.Error
			}
			if bres.RowsAffected == 0 {
				return ErrBalanceNotFound
			}
		}

		req.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// InitSuperAdmin seeds the administrator account from configuration if it
// doesn't exist yet, together with its leave balance record.
func InitSuperAdmin(ctx context.Context, db Database, admin *config.SuperAdminConfig, leave *config.LeaveConfig) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	if _, err := db.GetUserByEmail(ctx, admin.Email); err == nil {
		// Admin already exists
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	role, err := db.GetRoleByName(ctx, RoleAdmin)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(ctx, func(ctx context.Context) error {
		user := &User{
			Email:     admin.Email,
			Password:  string(hashed),
			Name:      "Administrator",
			RoleID:    role.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.CreateUser(ctx, user); err != nil {
			return err
		}

		balance := &UserLeave{
			UserID:           user.ID,
			TotalWorkingDays: leave.TotalWorkingDays,
			UsedLeave:        0,
			AvailableLeave:   leave.AnnualLeaveDays,
			AttendancePerc:   AttendancePercent(leave.TotalWorkingDays, 0),
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}
		return db.CreateUserLeave(ctx, balance)
	})
}
