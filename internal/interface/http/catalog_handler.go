package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/domain/catalog"
)

// Library searches books (?q=, ?by=title|author) and lists the admin collection.
func (h *Handler) Library(c *gin.Context) {
	result, err := h.catalogSvc.Library(c.Request.Context(), c.Query("q"), catalog.SearchBy(c.Query("by")))
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// Cinema lists documentaries for ?filter=.
func (h *Handler) Cinema(c *gin.Context) {
	result, err := h.catalogSvc.Cinema(c.Request.Context(), c.Query("filter"))
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// History lists history documentaries and books.
func (h *Handler) History(c *gin.Context) {
	result, err := h.catalogSvc.History(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// Courses lists training programs.
func (h *Handler) Courses(c *gin.Context) {
	result, err := h.catalogSvc.Courses(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// Archives lists or searches (?tab=, ?q=) the digital archive.
func (h *Handler) Archives(c *gin.Context) {
	items, err := h.catalogSvc.Archives(c.Request.Context(), catalog.ArchiveTab(c.Query("tab")), c.Query("q"))
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// News returns the generated headlines.
func (h *Handler) News(c *gin.Context) {
	articles, err := h.catalogSvc.News(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// VideoSnapshot serves the last published course video snapshot.
func (h *Handler) VideoSnapshot(c *gin.Context) {
	snapshot, err := h.catalogSvc.VideoSnapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomain(err, "catalog_failed"))
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
