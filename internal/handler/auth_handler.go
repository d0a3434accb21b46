package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-backend/internal/middleware"
	"github.com/campushq/campus-backend/internal/model"
	"github.com/campushq/campus-backend/internal/response"
	"github.com/campushq/campus-backend/internal/service"
	"github.com/campushq/campus-backend/internal/validator"
)

// AuthHandler handles admin and portal authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLogin godoc
// POST /api/v1/auth/admin/login
// Authenticates an admin and returns a JWT carrying the role's permissions.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RecoveryQuestions godoc
// GET /api/v1/auth/admin/recovery-questions/:username
// Returns the security questions registered for a username.
func (h *AuthHandler) RecoveryQuestions(c *gin.Context) {
	questions, err := h.authService.GetRecoveryQuestions(c.Request.Context(), c.Param("username"))
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AdminRecover godoc
// POST /api/v1/auth/admin/recover
// Resets an admin password after all three security answers match.
func (h *AuthHandler) AdminRecover(c *gin.Context) {
	var req model.AdminRecoverRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.RecoverAdmin(c.Request.Context(), &req); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password reset successfully"})
}

// AdminMe godoc
// GET /api/v1/auth/admin/me
// Returns the authenticated admin's record and permissions.
func (h *AuthHandler) AdminMe(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	admin, err := h.authService.GetAdmin(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin, "permissions": claims.Permissions})
}

// AdminChangePassword godoc
// POST /api/v1/auth/admin/change-password
// Changes the authenticated admin's password after verifying the old one.
func (h *AuthHandler) AdminChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ChangeAdminPassword(c.Request.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed successfully"})
}

// PortalRegister godoc
// POST /api/v1/auth/portal/register
// Opens a portal account for an existing registry record.
func (h *AuthHandler) PortalRegister(c *gin.Context) {
	var req model.PortalRegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.authService.RegisterPortalAccount(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"account": account})
}

// PortalLogin godoc
// POST /api/v1/auth/portal/login
// Authenticates a portal user. Rejects when another session is active.
func (h *AuthHandler) PortalLogin(c *gin.Context) {
	var req model.PortalLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.PortalLogin(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// PortalLogout godoc
// POST /api/v1/auth/portal/logout
// Releases the caller's active session.
func (h *AuthHandler) PortalLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.PortalLogout(c.Request.Context(), claims.PortalRole, claims.UserID); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// PortalMe godoc
// GET /api/v1/auth/portal/me
// Returns the person record behind the caller's session.
func (h *AuthHandler) PortalMe(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	profile, err := h.authService.PortalProfile(c.Request.Context(), claims.PortalRole, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": claims.PortalRole, "profile": profile})
}

// PortalChangePassword godoc
// POST /api/v1/auth/portal/change-password
// Changes the caller's portal password after verifying the old one.
func (h *AuthHandler) PortalChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ChangePortalPassword(c.Request.Context(), claims.PortalRole, claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password changed successfully"})
}
