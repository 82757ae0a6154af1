package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProblemHandler struct {
	problemService service.ProblemService
}

// NewProblemHandler sets up the routing dependencies for ProblemReport endpoints
func NewProblemHandler(problemService service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ProblemHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleEmployee, model.RoleManager)
	managerOnly := middleware.RequireRole(model.RoleManager)

	problem := router.Group("/problem")
	{
		problem.POST("/report", anyRole, h.Report)
		problem.GET("/my-reports", anyRole, h.MyReports)

		problem.GET("/all", managerOnly, h.List)
		problem.PUT("/:id/resolve", managerOnly, h.Resolve)
		problem.PUT("/:id/update-status", managerOnly, h.UpdateStatus)
	}
}

// Report handles POST /problem/report to file a problem report
// @Summary      Report a problem
// @Description  Files a problem report. Category defaults to other, priority to medium.
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ReportProblemRequest  true  "Problem Report Payload"
// @Success      201      {object}  response.Response{data=model.ProblemReport}
// @Failure      400      {object}  response.Response
// @Router       /problem/report [post]
func (h *ProblemHandler) Report(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.ReportProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	report, err := h.problemService.Report(c.Request.Context(), userID, req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, report))
}

// MyReports handles GET /problem/my-reports
// @Summary      My problem reports
// @Description  Returns the caller's problem reports, newest first
// @Tags         problems
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.ProblemReport}
// @Failure      401  {object}  response.Response
// @Router       /problem/my-reports [get]
func (h *ProblemHandler) MyReports(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	reports, err := h.problemService.MyReports(c.Request.Context(), userID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// List handles GET /problem/all for managers
// @Summary      List problem reports
// @Description  Retrieves problem reports across all employees with optional filters
// @Tags         problems
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Param        category  query     string  false  "Filter by category"
// @Success      200       {object}  response.Response{data=[]model.ProblemReport}
// @Failure      500       {object}  response.Response
// @Router       /problem/all [get]
func (h *ProblemHandler) List(c *gin.Context) {
	filter := repository.ProblemFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
	}

	reports, err := h.problemService.List(c.Request.Context(), filter)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reports))
}

// Resolve handles PUT /problem/:id/resolve
// @Summary      Resolve a problem report
// @Description  Marks a report as resolved. A resolution text is required.
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Problem ID"
// @Param        payload  body      service.ResolveProblemRequest  true  "Resolution Payload"
// @Success      200      {object}  response.Response{data=model.ProblemReport}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /problem/{id}/resolve [put]
func (h *ProblemHandler) Resolve(c *gin.Context) {
	managerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid problem id"))
		return
	}

	var req service.ResolveProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	report, err := h.problemService.Resolve(c.Request.Context(), id, managerID, req.Resolution)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// UpdateStatus handles PUT /problem/:id/update-status
// @Summary      Update a problem report
// @Description  Moves a report to a new status. Resolving or closing requires a resolution text.
// @Tags         problems
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Problem ID"
// @Param        payload  body      service.UpdateProblemRequest  true  "Status Update Payload"
// @Success      200      {object}  response.Response{data=model.ProblemReport}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /problem/{id}/update-status [put]
func (h *ProblemHandler) UpdateStatus(c *gin.Context) {
	managerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid problem id"))
		return
	}

	var req service.UpdateProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	report, err := h.problemService.UpdateStatus(c.Request.Context(), id, managerID, req)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
