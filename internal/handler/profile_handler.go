package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler sets up the routing dependencies for profile endpoints
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	employeeOnly := middleware.RequireRole(model.RoleEmployee)

	profile := router.Group("/profile")
	{
		profile.GET("/attendance-heatmap", employeeOnly, h.Heatmap)
		profile.GET("/attendance-score", employeeOnly, h.Score)
	}
}

// Heatmap handles GET /profile/attendance-heatmap
// @Summary      Yearly attendance heatmap
// @Description  Returns the caller's attendance for a year keyed by date
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Year (default current)"
// @Success      200   {object}  response.Response{data=map[string]model.HeatmapEntry}
// @Failure      401   {object}  response.Response
// @Router       /profile/attendance-heatmap [get]
func (h *ProfileHandler) Heatmap(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}

	heatmap, err := h.profileService.Heatmap(c.Request.Context(), userID, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, heatmap))
}

// Score handles GET /profile/attendance-score
// @Summary      Yearly performance score
// @Description  Returns the caller's weighted attendance score for a year
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Year (default current)"
// @Success      200   {object}  response.Response{data=service.ProfileScore}
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /profile/attendance-score [get]
func (h *ProfileHandler) Score(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}

	score, err := h.profileService.Score(c.Request.Context(), userID, year)
	if err != nil {
		status := errorStatus(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, score))
}
