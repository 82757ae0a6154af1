package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler sets up the routing dependencies for RegistrationRequest endpoints
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *RegistrationHandler) RegisterRoutes(router *gin.RouterGroup) {
	managerOnly := middleware.RequireRole(model.RoleManager)

	registrations := router.Group("/registration-requests")
	{
		registrations.GET("", managerOnly, h.Pending)
		registrations.GET("/all", managerOnly, h.List)
		registrations.POST("/:id/approve", managerOnly, h.Approve)
		registrations.POST("/:id/reject", managerOnly, h.Reject)
	}
}

// Pending handles GET /registration-requests for managers
// @Summary      Pending registration requests
// @Description  Retrieves the registration requests awaiting review
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.RegistrationRequest}
// @Failure      500  {object}  response.Response
// @Router       /registration-requests [get]
func (h *RegistrationHandler) Pending(c *gin.Context) {
	requests, err := h.registrationService.List(c.Request.Context(), model.ReviewPending)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// List handles GET /registration-requests/all for managers
// @Summary      List registration requests
// @Description  Retrieves registration requests, optionally filtered by status
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending, approved, rejected)"
// @Success      200     {object}  response.Response{data=[]model.RegistrationRequest}
// @Failure      500     {object}  response.Response
// @Router       /registration-requests/all [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	requests, err := h.registrationService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// Approve handles POST /registration-requests/:id/approve
// @Summary      Approve a registration request
// @Description  Creates the employee account from the pending request
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration Request ID"
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /registration-requests/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid registration request id"))
		return
	}

	user, err := h.registrationService.Approve(c.Request.Context(), id, reviewerID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Registration approved", user))
}

// Reject handles POST /registration-requests/:id/reject
// @Summary      Reject a registration request
// @Description  Rejects the pending request. Without a reason, "No reason provided" is recorded.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                             true   "Registration Request ID"
// @Param        payload  body      service.RejectRegistrationRequest  false  "Rejection Reason"
// @Success      200      {object}  response.Response{data=model.RegistrationRequest}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /registration-requests/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid registration request id"))
		return
	}

	var req service.RejectRegistrationRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
			return
		}
	}

	request, err := h.registrationService.Reject(c.Request.Context(), id, reviewerID, req.Reason)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Registration rejected", request))
}
