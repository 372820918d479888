package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudigital/portal/internal/domain/assistant"
)

// CreateSession opens a chat with the welcome message.
func (h *Handler) CreateSession(c *gin.Context) {
	session, err := h.assistantSvc.CreateSession(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomain(err, "assistant_failed"))
		return
	}
	c.JSON(http.StatusCreated, session.View())
}

// GetSession returns the transcript of a chat.
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.assistantSvc.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomain(err, "assistant_failed"))
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// UploadDocument loads a PDF, DOCX or text file into a chat.
func (h *Handler) UploadDocument(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "upload_failed", "failed to read file", err))
		return
	}

	session, err := h.assistantSvc.LoadDocument(c.Request.Context(), c.Param("id"), fileHeader.Filename, data)
	if err != nil {
		abortWithError(c, fromDomain(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// SendMessage answers one chat message.
func (h *Handler) SendMessage(c *gin.Context) {
	var req assistant.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.assistantSvc.SendMessage(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, fromDomain(err, "assistant_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSession clears the transcript and the loaded document.
func (h *Handler) ResetSession(c *gin.Context) {
	session, err := h.assistantSvc.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomain(err, "assistant_failed"))
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// DeleteSession discards a chat.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.assistantSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, fromDomain(err, "assistant_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}
