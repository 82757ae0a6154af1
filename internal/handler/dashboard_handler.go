package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler sets up the routing dependencies for dashboard endpoints
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	managerOnly := middleware.RequireRole(model.RoleManager)

	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/employee", middleware.RequireRole(model.RoleEmployee), h.Employee)
		dashboard.GET("/manager", managerOnly, h.Manager)
		dashboard.GET("/best-employees", managerOnly, h.BestEmployees)
	}
}

// Employee handles GET /dashboard/employee
// @Summary      Employee dashboard
// @Description  Returns today's record, the monthly summary and open request counts
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.EmployeeDashboard}
// @Failure      401  {object}  response.Response
// @Router       /dashboard/employee [get]
func (h *DashboardHandler) Employee(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	dashboard, err := h.dashboardService.Employee(c.Request.Context(), userID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// Manager handles GET /dashboard/manager
// @Summary      Manager dashboard
// @Description  Returns today's team status, the weekly trend, department stats and pending counts
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.ManagerDashboard}
// @Failure      500  {object}  response.Response
// @Router       /dashboard/manager [get]
func (h *DashboardHandler) Manager(c *gin.Context) {
	dashboard, err := h.dashboardService.Manager(c.Request.Context())
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// BestEmployees handles GET /dashboard/best-employees
// @Summary      Best employees
// @Description  Ranks employees by monthly performance score and returns the top five
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month (1-12, default current)"
// @Param        year   query     int  false  "Year (default current)"
// @Success      200    {object}  response.Response{data=[]model.EmployeeStats}
// @Failure      500    {object}  response.Response
// @Router       /dashboard/best-employees [get]
func (h *DashboardHandler) BestEmployees(c *gin.Context) {
	month, year := monthYearQuery(c)

	stats, err := h.dashboardService.BestEmployees(c.Request.Context(), month, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
