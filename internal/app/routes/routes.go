package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alimon808/ContosoUniversity2017/internal/app/controllers"
	"github.com/alimon808/ContosoUniversity2017/internal/app/models/dto"
)

// HealthCheck reports whether the backing store is reachable. Nil means there is
// nothing to check.
type HealthCheck func(ctx context.Context) error

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, courseController *controllers.CourseController, health HealthCheck) {
	// API version group
	v1 := router.Group("/api/v1")

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.List)
		courses.GET("/details/:id", courseController.Details)
		courses.GET("/create", courseController.ShowCreateForm)
		courses.POST("/create", courseController.Create)
		courses.GET("/edit/:id", courseController.ShowEditForm)
		courses.POST("/edit/:id", courseController.Edit)
		courses.GET("/delete/:id", courseController.ShowDeleteConfirm)
		courses.POST("/delete/:id", courseController.DeleteConfirmed)
		courses.GET("/update-credits", courseController.BulkUpdateCredits)
	}

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, dto.NewFailureResponse(
					dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "database unavailable"), nil))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
}
