package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/domain/inventory"
)

// ListInventory returns entries filtered by ?module= and ?category=.
func (h *Handler) ListInventory(c *gin.Context) {
	filter := inventory.Filter{
		Module:   inventory.Module(c.Query("module")),
		Category: c.Query("category"),
	}
	entries, err := h.inventorySvc.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, fromDomain(err, "inventory_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// SearchInventory finds one entry by title fragment or id (?q=).
func (h *Handler) SearchInventory(c *gin.Context) {
	entry, err := h.inventorySvc.Find(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, fromDomain(err, "inventory_failed"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetInventory returns one entry.
func (h *Handler) GetInventory(c *gin.Context) {
	entry, err := h.inventorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomain(err, "inventory_failed"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateInventory inserts an entry from the console form.
func (h *Handler) CreateInventory(c *gin.Context) {
	h.saveInventory(c, "", http.StatusCreated)
}

// UpdateInventory replaces an existing entry.
func (h *Handler) UpdateInventory(c *gin.Context) {
	h.saveInventory(c, c.Param("id"), http.StatusOK)
}

func (h *Handler) saveInventory(c *gin.Context, editID string, status int) {
	var form inventory.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	entry, err := h.inventorySvc.Save(c.Request.Context(), form, editID)
	if err != nil {
		abortWithError(c, fromDomain(err, "inventory_failed"))
		return
	}
	if claims, ok := adminClaims(c); ok {
		h.logger.Info("inventory saved", "id", entry.ID(), "operation", entry.Operation, "admin", claims.Username)
	}
	c.JSON(status, entry)
}

// DeleteInventory removes an entry.
func (h *Handler) DeleteInventory(c *gin.Context) {
	if err := h.inventorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, fromDomain(err, "inventory_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}
