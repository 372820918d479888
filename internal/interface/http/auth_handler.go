package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/domain/auth"
	apperrors "github.com/edudigital/portal/pkg/errors"
)

// Login exchanges admin credentials for tokens.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomain(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh issues a new token pair from a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, fromDomain(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated admin.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := adminClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return
	}
	profile, err := h.authSvc.Profile(c.Request.Context(), claims.AdminID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "admin no longer exists", err))
			return
		}
		abortWithError(c, fromDomain(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusOK, profile)
}
