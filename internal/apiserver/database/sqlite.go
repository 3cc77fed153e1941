package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amoylab/leavehub/internal/common/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SQLite implements the Database interface using SQLite
type SQLite struct {
	db  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewSQLite creates a new SQLite instance
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	db := &SQLite{
		cfg: cfg,
	}

	if cfg.DBName != ":memory:" {
		dir := filepath.Dir(db.cfg.DBName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(db.cfg.DBName), &gorm.Config{})
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
func (db *SQLite) Close() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *SQLite) CreateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, db.db).Create(user).Error
}

func (db *SQLite) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := getDBFromContext(ctx, db.db).Preload("Role").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *SQLite) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := getDBFromContext(ctx, db.db).Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *SQLite) UpdateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, db.db).Save(user).Error
}

func (db *SQLite) DeleteUser(ctx context.Context, id uint) error {
	return getDBFromContext(ctx, db.db).Delete(&User{}, id).Error
}

func (db *SQLite) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := getDBFromContext(ctx, db.db).Preload("Role").Find(&users).Error
	return users, err
}

func (db *SQLite) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	err := getDBFromContext(ctx, db.db).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (db *SQLite) CreateLeaveRequest(ctx context.Context, req *LeaveRequest) error {
	req.Status = LeavePending
	return getDBFromContext(ctx, db.db).Create(req).Error
}

func (db *SQLite) GetLeaveRequest(ctx context.Context, id uint) (*LeaveRequest, error) {
	var req LeaveRequest
	err := getDBFromContext(ctx, db.db).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (db *SQLite) ListLeaveRequestsByUser(ctx context.Context, userID uint) ([]*LeaveRequest, error) {
	var reqs []*LeaveRequest
	err := getDBFromContext(ctx, db.db).
		Where("user_id = ?", userID).
		Find(&reqs).Error
	return reqs, err
}

func (db *SQLite) HasOverlappingLeave(ctx context.Context, userID uint, start, end time.Time) (bool, error) {
	var count int64
	err := getDBFromContext(ctx, db.db).
		Model(&LeaveRequest{}).
		Where("user_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			userID, []LeaveStatus{LeavePending, LeaveApproved}, end, start).
		Count(&count).Error
	return count > 0, err
}

func (db *SQLite) UpdateLeaveRequestStatus(ctx context.Context, id uint, status LeaveStatus) (*LeaveRequest, error) {
	return updateLeaveRequestStatus(ctx, db.db, id, status)
}

func (db *SQLite) CreateUserLeave(ctx context.Context, balance *UserLeave) error {
	return getDBFromContext(ctx, db.db).Create(balance).Error
}

func (db *SQLite) GetUserLeave(ctx context.Context, userID uint) (*UserLeave, error) {
	var balance UserLeave
	err := getDBFromContext(ctx, db.db).Where("user_id = ?", userID).First(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (db *SQLite) UpdateUserLeave(ctx context.Context, balance *UserLeave) error {
	return getDBFromContext(ctx, db.db).Save(balance).Error
}

func (db *SQLite) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}
