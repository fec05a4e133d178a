package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sanchaypro/sanchay-server/internal/models"
	"github.com/sanchaypro/sanchay-server/internal/service"
)

// Handler holds the API handlers
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Login)

	// Authenticated routes
	auth := api.Group("", AuthMiddleware())
	auth.POST("/auth/change-password", h.ChangePassword)
	auth.GET("/payments", h.ListPayments)
	auth.POST("/payments", h.SubmitPayment)
	auth.GET("/payments/me/summary", h.MemberSummary)
	auth.GET("/methods", h.ListMethods)
	auth.GET("/notices", h.ListNotices)
	auth.GET("/settings", h.GetSettings)

	// Admin routes
	admin := auth.Group("", AdminMiddleware())
	admin.GET("/members", h.ListMembers)
	admin.POST("/members", h.CreateMember)
	admin.PUT("/members/:id", h.UpdateMember)
	admin.DELETE("/members/:id", h.DeleteMember)
	admin.POST("/payments/record", h.RecordPayment)
	admin.GET("/payments/pending", h.ListPendingPayments)
	admin.POST("/payments/:id/approve", h.ApprovePayment)
	admin.DELETE("/payments/:id", h.RejectPayment)
	admin.POST("/methods", h.CreateMethod)
	admin.PUT("/methods/:id", h.UpdateMethod)
	admin.DELETE("/methods/:id", h.DeleteMethod)
	admin.POST("/notices", h.CreateNotice)
	admin.DELETE("/notices/:id", h.DeleteNotice)
	admin.PUT("/settings", h.SaveSettings)
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/reports/summary", h.ReportSummary)
	admin.POST("/reports/send", h.SendReportSummary)
}

// handleError maps service errors to HTTP responses. End users only ever see
// generic messages.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: "Record not found",
		})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "VALIDATION_FAILED",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid credentials",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: "The action could not be completed",
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "VALIDATION_FAILED",
		Message: err.Error(),
	})
}

// Auth handlers
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.MustGet("userId").(string)
	if err := h.svc.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Password changed"})
}

// Member handlers
func (h *Handler) ListMembers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListMembers(c.Request.Context()))
}

func (h *Handler) CreateMember(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.svc.CreateMember(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *Handler) UpdateMember(c *gin.Context) {
	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.svc.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *Handler) DeleteMember(c *gin.Context) {
	if err := h.svc.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// Payment handlers
func (h *Handler) ListPayments(c *gin.Context) {
	role := c.MustGet("role").(models.Role)

	// Admins see the full history, members only their own
	memberID := ""
	if !role.IsAdmin() {
		memberID = c.MustGet("memberId").(string)
	}

	c.JSON(http.StatusOK, h.svc.ListPayments(c.Request.Context(), memberID))
}

func (h *Handler) SubmitPayment(c *gin.Context) {
	var req models.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID := c.MustGet("userId").(string)
	member, err := h.svc.GetMember(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	payment, err := h.svc.SubmitPayment(c.Request.Context(), member, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	adminID := c.MustGet("userId").(string)
	payment, err := h.svc.RecordPayment(c.Request.Context(), adminID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) ListPendingPayments(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListPendingPayments(c.Request.Context()))
}

func (h *Handler) ApprovePayment(c *gin.Context) {
	adminID := c.MustGet("userId").(string)
	payment, err := h.svc.ApprovePayment(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (h *Handler) RejectPayment(c *gin.Context) {
	if err := h.svc.RejectPayment(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

func (h *Handler) MemberSummary(c *gin.Context) {
	memberID := c.MustGet("memberId").(string)
	c.JSON(http.StatusOK, h.svc.MemberSummary(c.Request.Context(), memberID))
}

// Payment method handlers
func (h *Handler) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListMethods(c.Request.Context()))
}

func (h *Handler) CreateMethod(c *gin.Context) {
	var req models.CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	method, err := h.svc.CreateMethod(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, method)
}

func (h *Handler) UpdateMethod(c *gin.Context) {
	var req models.CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	method, err := h.svc.UpdateMethod(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, method)
}

func (h *Handler) DeleteMethod(c *gin.Context) {
	if err := h.svc.DeleteMethod(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// Notice handlers
func (h *Handler) ListNotices(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListNotices(c.Request.Context()))
}

func (h *Handler) CreateNotice(c *gin.Context) {
	var req models.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	notice, err := h.svc.CreateNotice(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notice)
}

func (h *Handler) DeleteNotice(c *gin.Context) {
	if err := h.svc.DeleteNotice(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "success"})
}

// Settings handlers
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetSettings(c.Request.Context()))
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var req models.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	settings, err := h.svc.SaveSettings(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Report handlers
func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.DashboardSummary(c.Request.Context()))
}

func (h *Handler) ReportSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ReportSummary(c.Request.Context()))
}

func (h *Handler) SendReportSummary(c *gin.Context) {
	h.svc.SendReportSummary(c.Request.Context())
	c.JSON(http.StatusOK, models.StatusResponse{Status: "success", Message: "Summary sent"})
}
