package database

import (
	"context"
	"fmt"
	"time"

	"github.com/amoylab/leavehub/internal/common/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres implements the Database interface using PostgreSQL
type Postgres struct {
	db  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewPostgres creates a new Postgres instance
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	db := &Postgres{
		cfg: cfg,
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := gormDB.AutoMigrate(&Role{}, &User{}, &LeaveRequest{}, &UserLeave{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := ensureRoles(gormDB); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	db.db = gormDB
	return db, nil
}

// Close closes the database connection
func (db *Postgres) Close() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *Postgres) CreateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, db.db).Create(user).Error
}

func (db *Postgres) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := getDBFromContext(ctx, db.db).Preload("Role").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := getDBFromContext(ctx, db.db).Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) UpdateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, db.db).Save(user).Error
}

func (db *Postgres) DeleteUser(ctx context.Context, id uint) error {
	return getDBFromContext(ctx, db.db).Delete(&User{}, id).Error
}

func (db *Postgres) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := getDBFromContext(ctx, db.db).Preload("Role").Find(&users).Error
	return users, err
}

func (db *Postgres) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := getDBFromContext(ctx, db.db).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (db *Postgres) CreateLeaveRequest(ctx context.Context, req *LeaveRequest) error {
	req.Status = LeavePending
	return getDBFromContext(ctx, db.db).Create(req).Error
}

func (db *Postgres) GetLeaveRequest(ctx context.Context, id uint) (*LeaveRequest, error) {
	var req LeaveRequest
	err := getDBFromContext(ctx, db.db).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (db *Postgres) ListLeaveRequestsByUser(ctx context.Context, userID uint) ([]*LeaveRequest, error) {
	var reqs []*LeaveRequest
	err := getDBFromContext(ctx, db.db).
		Where("user_id = ?", userID).
		Find(&reqs).Error
	return reqs, err
}

func (db *Postgres) HasOverlappingLeave(ctx context.Context, userID uint, start, end time.Time) (bool, error) {
	var count int64
	err := getDBFromContext(ctx, db.db).
		Model(&LeaveRequest{}).
		Where("user_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			userID, []LeaveStatus{LeavePending, LeaveApproved}, end, start).
		Count(&count).Error
	return count > 0, err
}

func (db *Postgres) UpdateLeaveRequestStatus(ctx context.Context, id uint, status LeaveStatus) (*LeaveRequest, error) {
	return updateLeaveRequestStatus(ctx, db.db, id, status)
}

func (db *Postgres) CreateUserLeave(ctx context.Context, balance *UserLeave) error {
	return getDBFromContext(ctx, db.db).Create(balance).Error
}

func (db *Postgres) GetUserLeave(ctx context.Context, userID uint) (*UserLeave, error) {
	var balance UserLeave
	err := getDBFromContext(ctx, db.db).Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (db *Postgres) UpdateUserLeave(ctx context.Context, balance *UserLeave) error {
	return getDBFromContext(ctx, db.db).Save(balance).Error
}

func (db *Postgres) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}
