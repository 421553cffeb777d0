package handler

import (
	"github.com/gin-gonic/gin"

	unitsapp "github.com/proforma/backend/internal/application/units"
)

// UnitHandler handles rent-roll unit API endpoints. Units are created and
// removed through the statement's unit-linked rows; the API edits what a
// row cannot express.
type UnitHandler struct {
	BaseHandler
	unitService *unitsapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *unitsapp.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// RegisterRoutes registers all unit routes
func (h *UnitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties/:id/units", h.ListByProperty)
	rg.GET("/units/:id", h.Get)
	rg.PATCH("/units/:id", h.Update)
}

// ListByProperty returns the rent roll for a property
func (h *UnitHandler) ListByProperty(c *gin.Context) {
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

	resp, err := h.unitService.ListByProperty(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns a single unit
func (h *UnitHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	id, ok := bindPropertyID(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	resp, err := h.unitService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update edits unit fields that have no statement counterpart, such as
// square footage and occupancy
func (h *UnitHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	id, ok := bindPropertyID(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req unitsapp.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.unitService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
