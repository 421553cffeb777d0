package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	statementapp "github.com/proforma/backend/internal/application/statement"
)

// StatementHandler handles income statement API endpoints. Every route is
// scoped to a property; the statement itself has no independent ID.
type StatementHandler struct {
	BaseHandler
	statementService *statementapp.StatementService
	exportService    *statementapp.ExportService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *statementapp.StatementService, exportService *statementapp.ExportService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
		exportService:    exportService,
	}
}

// RegisterRoutes registers all statement routes
func (h *StatementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/properties/:id/statement")
	g.GET("", h.Get)
	g.POST("/edit-field", h.EditField)
	g.POST("/rename", h.RenameRow)
	g.POST("/rows", h.AddRootRow)
	g.POST("/children", h.AddChildren)
	g.POST("/delete", h.DeleteRow)
	g.POST("/clone", h.CloneRow)
	g.POST("/reorder", h.Reorder)
	g.GET("/export", h.ExportPDF)
}

type statementCall func(*gin.Context, *statementapp.StatementService) (*statementapp.StatementResponse, error)

// run binds the common property scope and executes one statement operation
func (h *StatementHandler) run(c *gin.Context, call statementCall) {
	if _, err := getTenantID(c); err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	if _, ok := bindPropertyID(c); !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	resp, err := call(c, h.statementService)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns the full statement with derived rollups
func (h *StatementHandler) Get(c *gin.Context) {
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.Get(c.Request.Context(), tenantID, propertyID)
	})
}

// EditField applies one numeric edit and returns the reconciled statement
func (h *StatementHandler) EditField(c *gin.Context) {
	var req statementapp.EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.EditField(c.Request.Context(), tenantID, propertyID, req)
	})
}

// RenameRow changes a row label
func (h *StatementHandler) RenameRow(c *gin.Context) {
	var req statementapp.RenameRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.RenameRow(c.Request.Context(), tenantID, propertyID, req)
	})
}

// AddRootRow appends or inserts a root row in a section
func (h *StatementHandler) AddRootRow(c *gin.Context) {
	var req statementapp.AddRootRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.AddRootRow(c.Request.Context(), tenantID, propertyID, req)
	})
}

// AddChildren adds child rows under a row, turning it into a subtotal
func (h *StatementHandler) AddChildren(c *gin.Context) {
	var req statementapp.AddChildrenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.AddChildren(c.Request.Context(), tenantID, propertyID, req)
	})
}

// DeleteRow removes a row and its subtree
func (h *StatementHandler) DeleteRow(c *gin.Context) {
	var req statementapp.DeleteRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.DeleteRow(c.Request.Context(), tenantID, propertyID, req)
	})
}

// CloneRow duplicates a row a given number of times
func (h *StatementHandler) CloneRow(c *gin.Context) {
	var req statementapp.CloneRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.CloneRow(c.Request.Context(), tenantID, propertyID, req)
	})
}

// Reorder replaces the row order of a section root or a row's children
func (h *StatementHandler) Reorder(c *gin.Context) {
	var req statementapp.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.run(c, func(c *gin.Context, svc *statementapp.StatementService) (*statementapp.StatementResponse, error) {
		tenantID, _ := getTenantID(c)
		propertyID, _ := bindPropertyID(c)
		return svc.Reorder(c.Request.Context(), tenantID, propertyID, req)
	})
}

// ExportPDF renders the statement as a PDF document
func (h *StatementHandler) ExportPDF(c *gin.Context) {
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

	pdf, fileName, err := h.exportService.ExportPDF(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
