package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/amoylab/leavehub/internal/apiserver/database"
	"github.com/amoylab/leavehub/internal/apiserver/middleware"
	"github.com/amoylab/leavehub/internal/common/dto"
	"github.com/amoylab/leavehub/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrorEmailPasswordRequired).Send(c)
		return
	}

	// Uniqueness check before creation
	if _, err := h.db.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		i18n.Error(i18n.ErrorEmailExists).Send(c)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.Error("failed to check existing email", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	role, err := h.db.GetRoleByName(c.Request.Context(), database.RoleEmployee)
	if err != nil {
		h.logger.Error("failed to resolve employee role", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	newUser := &database.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		RoleID:    role.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// The user and its leave balance are created as one unit
	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateUser(ctx, newUser); err != nil {
			return err
		}

		balance := &database.UserLeave{
			UserID:           newUser.ID,
			TotalWorkingDays: h.cfg.Leave.TotalWorkingDays,
			UsedLeave:        0,
			AvailableLeave:   h.cfg.Leave.AnnualLeaveDays,
			AttendancePerc:   database.AttendancePercent(h.cfg.Leave.TotalWorkingDays, 0),
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}
		return h.db.CreateUserLeave(ctx, balance)
	})
	if err != nil {
		h.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	h.logger.Info("user registered", zap.Uint("user_id", newUser.ID))
	i18n.Created(i18n.MsgUserCreated).WithPayload(profileOf(newUser)).Send(c)
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrorEmailPasswordRequired).Send(c)
		return
	}
	if req.Email == "" || req.Password == "" {
		i18n.Error(i18n.ErrorEmailPasswordRequired).Send(c)
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		i18n.Error(i18n.ErrorInvalidCredentials).Send(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		i18n.Error(i18n.ErrorInvalidCredentials).Send(c)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Role.Name)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	i18n.Success(i18n.MsgUserLoggedIn).With("token", token).Send(c)
}

// GetProfile handles getting the caller's profile
func (h *Handler) GetProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	c.JSON(200, gin.H{"data": profileOf(user)})
}

// UpdateProfile handles updating the caller's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	applyProfileFields(user, req.Name, req.Phone, req.Address)
	user.UpdatedAt = time.Now()

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update profile", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	i18n.Success(i18n.MsgProfileUpdated).Send(c)
}

// ChangePassword handles password rotation for the caller
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrorPasswordFieldsRequired).Send(c)
		return
	}
	if req.OldPass == "" || req.NewPass == "" || req.ConPass == "" {
		i18n.Error(i18n.ErrorPasswordFieldsRequired).Send(c)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPass)); err != nil {
		i18n.Error(i18n.ErrorInvalidOldPassword).Send(c)
		return
	}

	if req.NewPass != req.ConPass {
		i18n.Error(i18n.ErrorPasswordMismatch).Send(c)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPass), bcrypt.DefaultCost)
	if err != nil {
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	user.Password = string(hashedPassword)
	user.UpdatedAt = time.Now()
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to change password", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	i18n.Success(i18n.MsgPasswordChanged).Send(c)
}

// UpdateUser handles administrative user updates
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		i18n.Error(i18n.ErrorUserNotFound).Send(c)
		return
	}

	applyProfileFields(user, req.Name, req.Phone, req.Address)
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			i18n.Error(i18n.ErrInternalServer).Send(c)
			return
		}
		user.Password = string(hashedPassword)
	}
	if req.Role != "" {
		role, err := h.db.GetRoleByName(c.Request.Context(), req.Role)
		if err != nil {
			i18n.Error(i18n.ErrBadRequest).Send(c)
			return
		}
		user.RoleID = role.ID
		user.Role = *role
	}
	user.UpdatedAt = time.Now()

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update user", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	i18n.Success(i18n.MsgUserUpdated).Send(c)
}

// DeleteUser handles administrative user deletion
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}

	if _, err := h.db.GetUserByID(c.Request.Context(), id); err != nil {
		i18n.Error(i18n.ErrorUserNotFound).Send(c)
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete user", zap.Uint("user_id", id), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	h.logger.Info("user deleted", zap.Uint("user_id", id))
	i18n.Success(i18n.MsgUserDeleted).Send(c)
}

// ListUsers handles administrative user listing
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	out := make([]*dto.UserResponse, len(users))
	for i, user := range users {
		out[i] = &dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Phone:     user.Phone,
			Address:   user.Address,
			Role:      user.Role.Name,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		}
	}

	c.JSON(200, gin.H{"data": out})
}

// profileOf maps a user to its external profile shape, excluding credential
// and role fields.
func profileOf(user *database.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func applyProfileFields(user *database.User, name, phone, address string) {
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if address != "" {
		user.Address = address
	}
}

func paramID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
