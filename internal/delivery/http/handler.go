package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soychecker/backend/internal/domain"
)

// SoyChecker is the lookup service the handlers depend on
type SoyChecker interface {
	Submit(ctx context.Context, current domain.View, input string) (domain.View, bool)
	Check(ctx context.Context, barcode string) (domain.View, error)
	Clear(current domain.View) domain.View
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	checker SoyChecker
}

// NewHandler creates a new HTTP handler
func NewHandler(checker SoyChecker) *Handler {
	return &Handler{checker: checker}
}

// CheckRequest is the body of POST /api/v1/check
type CheckRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// barcodePage is the template data for the lookup page
type barcodePage struct {
	View       domain.View
	Background template.CSS
}

func newBarcodePage(v domain.View) barcodePage {
	return barcodePage{
		View:       v,
		Background: template.CSS(v.Background()),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "soychecker",
		"version": "1.0.0",
	})
}

// Home renders the landing page
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Soy Checker",
	})
}

// BarcodeForm renders the lookup page in its empty state
func (h *Handler) BarcodeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "barcode.html", newBarcodePage(domain.EmptyView()))
}

// SubmitBarcode handles the lookup form.
// A blank barcode answers 204 so the browser keeps showing the current page.
func (h *Handler) SubmitBarcode(c *gin.Context) {
	if h.checker == nil {
		c.String(http.StatusServiceUnavailable, "Soy checker not configured")
		return
	}

	view, submitted := h.checker.Submit(c.Request.Context(), domain.EmptyView(), c.PostForm("barcode"))
	if !submitted {
		c.Status(http.StatusNoContent)
		return
	}

	c.HTML(http.StatusOK, "barcode.html", newBarcodePage(view))
}

// ClearBarcode resets the lookup page
func (h *Handler) ClearBarcode(c *gin.Context) {
	view := domain.EmptyView()
	if h.checker != nil {
		view = h.checker.Clear(view)
	}
	c.HTML(http.StatusOK, "barcode.html", newBarcodePage(view))
}

// GetProduct handles GET /api/v1/products/:barcode
func (h *Handler) GetProduct(c *gin.Context) {
	h.respondCheck(c, c.Param("barcode"))
}

// CheckBarcode handles POST /api/v1/check
func (h *Handler) CheckBarcode(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "barcode is required",
		})
		return
	}

	h.respondCheck(c, req.Barcode)
}

func (h *Handler) respondCheck(c *gin.Context, barcode string) {
	if h.checker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Soy checker not configured",
		})
		return
	}

	view, err := h.checker.Check(c.Request.Context(), barcode)
	if errors.Is(err, domain.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "barcode is required",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	status := http.StatusOK
	if view.Outcome() == domain.OutcomeNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, view.Result())
}
