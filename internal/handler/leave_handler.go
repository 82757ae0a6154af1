package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeaveHandler struct {
	leaveService service.LeaveService
}

// NewLeaveHandler sets up the routing dependencies for Leave endpoints
func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *LeaveHandler) RegisterRoutes(router *gin.RouterGroup) {
	employeeOnly := middleware.RequireRole(model.RoleEmployee)
	managerOnly := middleware.RequireRole(model.RoleManager)

	leave := router.Group("/leave")
	{
		leave.POST("/apply", employeeOnly, h.Apply)
		leave.GET("/my-leaves", employeeOnly, h.MyLeaves)

		leave.GET("/all", managerOnly, h.List)
		leave.PUT("/:id/approve", managerOnly, h.Approve)
		leave.PUT("/:id/reject", managerOnly, h.Reject)
	}
}

// Apply handles POST /leave/apply to file a leave request
// @Summary      Apply for leave
// @Description  Files a leave request for manager review
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ApplyLeaveRequest  true  "Leave Request Payload"
// @Success      201      {object}  response.Response{data=model.Leave}
// @Failure      400      {object}  response.Response
// @Router       /leave/apply [post]
func (h *LeaveHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	leave, err := h.leaveService.Apply(c.Request.Context(), userID, req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, leave))
}

// MyLeaves handles GET /leave/my-leaves
// @Summary      My leave requests
// @Description  Returns the caller's leave requests, newest first
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Leave}
// @Failure      401  {object}  response.Response
// @Router       /leave/my-leaves [get]
func (h *LeaveHandler) MyLeaves(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	leaves, err := h.leaveService.MyLeaves(c.Request.Context(), userID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, leaves))
}

// List handles GET /leave/all for managers
// @Summary      List leave requests
// @Description  Retrieves leave requests across all employees, optionally filtered by status
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending, approved, rejected)"
// @Success      200     {object}  response.Response{data=[]model.Leave}
// @Failure      500     {object}  response.Response
// @Router       /leave/all [get]
func (h *LeaveHandler) List(c *gin.Context) {
	leaves, err := h.leaveService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, leaves))
}

// Approve handles PUT /leave/:id/approve
// @Summary      Approve a leave request
// @Description  Approves a pending leave request with an optional comment
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true   "Leave ID"
// @Param        payload  body      service.ReviewLeaveRequest  false  "Review Comment"
// @Success      200      {object}  response.Response{data=model.Leave}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /leave/{id}/approve [put]
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.review(c, h.leaveService.Approve)
}

// Reject handles PUT /leave/:id/reject
// @Summary      Reject a leave request
// @Description  Rejects a pending leave request. A comment is required.
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Leave ID"
// @Param        payload  body      service.ReviewLeaveRequest  true  "Review Comment"
// @Success      200      {object}  response.Response{data=model.Leave}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /leave/{id}/reject [put]
func (h *LeaveHandler) Reject(c *gin.Context) {
	h.review(c, h.leaveService.Reject)
}

func (h *LeaveHandler) review(c *gin.Context, decide func(ctx context.Context, id, reviewerID uuid.UUID, comment string) (*model.Leave, error)) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid leave id"))
		return
	}

	var req service.ReviewLeaveRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
			return
		}
	}

	leave, err := decide(c.Request.Context(), id, reviewerID, req.Comment)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, leave))
}
