package handler

import (
	"github.com/gin-gonic/gin"

	attachmentapp "github.com/proforma/backend/internal/application/attachment"
)

// AttachmentHandler handles the two-phase attachment upload flow. The
// client initiates an upload to get a presigned URL, uploads directly to
// object storage, then confirms.
type AttachmentHandler struct {
	BaseHandler
	attachmentService *attachmentapp.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *attachmentapp.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// RegisterRoutes registers all attachment routes
func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties/:id/attachments", h.InitiateUpload)
	rg.GET("/properties/:id/attachments", h.ListByProperty)
	rg.POST("/attachments/:id/confirm", h.ConfirmUpload)
	rg.DELETE("/attachments/:id", h.Delete)
}

// InitiateUpload creates a pending attachment and returns a presigned
// upload URL
func (h *AttachmentHandler) InitiateUpload(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	propertyID, ok := bindPropertyID(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req attachmentapp.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.attachmentService.InitiateUpload(c.Request.Context(), tenantID, propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ConfirmUpload verifies the object landed in storage and marks the
// attachment confirmed
func (h *AttachmentHandler) ConfirmUpload(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	id, ok := bindPropertyID(c)
	if !ok {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	resp, err := h.attachmentService.ConfirmUpload(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByProperty returns confirmed attachments with download URLs
func (h *AttachmentHandler) ListByProperty(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	propertyID, ok := bindPropertyID(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	resp, err := h.attachmentService.ListByProperty(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an attachment record and its stored object
func (h *AttachmentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	id, ok := bindPropertyID(c)
	if !ok {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
