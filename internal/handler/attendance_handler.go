package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAttendanceHandler sets up the routing dependencies for Attendance endpoints
func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AttendanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleEmployee, model.RoleManager)
	managerOnly := middleware.RequireRole(model.RoleManager)

	attendance := router.Group("/attendance")
	{
		// Employee routes — managers are redirected to the team views
		attendance.POST("/checkin", anyRole, h.CheckIn)
		attendance.POST("/checkout", anyRole, h.CheckOut)
		attendance.GET("/today", anyRole, h.Today)
		attendance.GET("/my-history", anyRole, h.MyHistory)
		attendance.GET("/my-summary", anyRole, h.MySummary)

		// Manager routes
		attendance.GET("/all", managerOnly, h.All)
		attendance.GET("/employee/:employeeId", managerOnly, h.ByEmployee)
		attendance.GET("/summary", managerOnly, h.TeamSummary)
		attendance.GET("/today-status", managerOnly, h.TodayStatus)
		attendance.GET("/export", managerOnly, h.Export)
	}
}

// rejectManager blocks managers from the personal attendance endpoints.
func rejectManager(c *gin.Context) bool {
	if role, _ := c.Get("userRole"); role == model.RoleManager {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden,
			"Use /api/attendance/all for manager access"))
		return true
	}
	return false
}

// parseFilter reads the shared query params of the manager list and export views.
func parseFilter(c *gin.Context) repository.AttendanceFilter {
	var filter repository.AttendanceFilter

	if raw := c.Query("user_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.UserID = &id
		}
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}
	filter.Status = c.Query("status")
	return filter
}

// CheckIn handles POST /attendance/checkin
// @Summary      Check in
// @Description  Records the daily check-in. Check-ins after the cutoff are marked late.
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=model.Attendance}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /attendance/checkin [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	if rejectManager(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	attendance, err := h.attendanceService.CheckIn(c.Request.Context(), userID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, attendance))
}

// CheckOut handles POST /attendance/checkout
// @Summary      Check out
// @Description  Records the daily check-out and computes the worked hours
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.Attendance}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /attendance/checkout [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	if rejectManager(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	attendance, err := h.attendanceService.CheckOut(c.Request.Context(), userID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, attendance))
}

// Today handles GET /attendance/today
// @Summary      Today's attendance
// @Description  Returns the caller's attendance record for today, if any
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /attendance/today [get]
func (h *AttendanceHandler) Today(c *gin.Context) {
	if rejectManager(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	attendance, err := h.attendanceService.Today(c.Request.Context(), userID)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"checkedIn":  attendance != nil,
		"attendance": attendance,
	}))
}

// MyHistory handles GET /attendance/my-history
// @Summary      My attendance history
// @Description  Returns the caller's attendance records for a month
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month (1-12, default current)"
// @Param        year   query     int  false  "Year (default current)"
// @Success      200    {object}  response.Response{data=[]model.Attendance}
// @Failure      403    {object}  response.Response
// @Router       /attendance/my-history [get]
func (h *AttendanceHandler) MyHistory(c *gin.Context) {
	if rejectManager(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	month, year := monthYearQuery(c)
	records, err := h.attendanceService.MyHistory(c.Request.Context(), userID, month, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// MySummary handles GET /attendance/my-summary
// @Summary      My monthly summary
// @Description  Returns the caller's aggregated attendance for a month
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month (1-12, default current)"
// @Param        year   query     int  false  "Year (default current)"
// @Success      200    {object}  response.Response{data=model.MonthlySummary}
// @Failure      403    {object}  response.Response
// @Router       /attendance/my-summary [get]
func (h *AttendanceHandler) MySummary(c *gin.Context) {
	if rejectManager(c) {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	month, year := monthYearQuery(c)
	summary, err := h.attendanceService.MySummary(c.Request.Context(), userID, month, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// All handles GET /attendance/all and extracts pagination controls
// @Summary      All attendance records
// @Description  Retrieves a paginated, filtered list of attendance records across employees
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        user_id     query     string  false  "Filter by user ID"
// @Param        start_date  query     string  false  "Filter from date (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Filter to date (YYYY-MM-DD)"
// @Param        status      query     string  false  "Filter by status"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200         {object}  response.Response{data=object}
// @Failure      500         {object}  response.Response
// @Router       /attendance/all [get]
func (h *AttendanceHandler) All(c *gin.Context) {
	params := pagination.Parse(c)

	filter := parseFilter(c)
	filter.Offset = params.Offset
	filter.Limit = params.Limit

	records, total, err := h.attendanceService.All(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch attendance records"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"records":    records,
		"pagination": pagination.NewMeta(params, total),
	}))
}

// ByEmployee handles GET /attendance/employee/:employeeId
// @Summary      Attendance by employee
// @Description  Returns one employee's records and monthly summary
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  path      string  true   "Employee ID"
// @Param        month       query     int     false  "Month (1-12, default current)"
// @Param        year        query     int     false  "Year (default current)"
// @Success      200         {object}  response.Response{data=service.EmployeeAttendance}
// @Failure      404         {object}  response.Response
// @Router       /attendance/employee/{employeeId} [get]
func (h *AttendanceHandler) ByEmployee(c *gin.Context) {
	month, year := monthYearQuery(c)

	result, err := h.attendanceService.ByEmployee(c.Request.Context(), c.Param("employeeId"), month, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// TeamSummary handles GET /attendance/summary
// @Summary      Team monthly summary
// @Description  Aggregates attendance across every employee for a month
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month (1-12, default current)"
// @Param        year   query     int  false  "Year (default current)"
// @Success      200    {object}  response.Response{data=model.TeamSummary}
// @Failure      500    {object}  response.Response
// @Router       /attendance/summary [get]
func (h *AttendanceHandler) TeamSummary(c *gin.Context) {
	month, year := monthYearQuery(c)

	summary, err := h.attendanceService.TeamSummary(c.Request.Context(), month, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// TodayStatus handles GET /attendance/today-status
// @Summary      Today's team status
// @Description  Returns who is present, late and absent today. Employees without a record count as absent.
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.TodayStatus}
// @Failure      500  {object}  response.Response
// @Router       /attendance/today-status [get]
func (h *AttendanceHandler) TodayStatus(c *gin.Context) {
	status, err := h.attendanceService.TodayStatus(c.Request.Context())
	if err != nil {
		code := errorStatus(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// Export handles GET /attendance/export
// @Summary      Export attendance as CSV
// @Description  Streams matching attendance records as a CSV download. The header row is always present.
// @Tags         attendance
// @Produce      text/csv
// @Security     BearerAuth
// @Param        user_id     query  string  false  "Filter by user ID"
// @Param        start_date  query  string  false  "Filter from date (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Filter to date (YYYY-MM-DD)"
// @Param        status      query  string  false  "Filter by status"
// @Success      200  {string}  string  "CSV payload"
// @Failure      500  {object}  response.Response
// @Router       /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	data, err := h.attendanceService.ExportCSV(c.Request.Context(), parseFilter(c))
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	filename := "attendance-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
