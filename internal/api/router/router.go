package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/config"
	"github.com/thurahtetaung/universal-yoga/internal/api/handler"
	"github.com/thurahtetaung/universal-yoga/internal/api/middleware"
	"github.com/thurahtetaung/universal-yoga/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil; sync is then not rate limited.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/:id", h.Course.GetCourse)
			courses.PUT("/:id", h.Course.UpdateCourse)
			courses.DELETE("/:id", h.Course.DeleteCourse)
			courses.GET("/:id/classes", h.Course.ListCourseClasses)
			courses.POST("/:id/classes", h.Class.CreateClass)
			courses.GET("/:id/class-dates", h.Class.ListClassDates)
			courses.GET("/:id/class-dates/validate", h.Class.ValidateClassDate)
		}

		v1.POST("/course-edits/:token", h.Course.ResolveCourseEdit)

		classes := v1.Group("/classes")
		{
			classes.GET("/:id", h.Class.GetClass)
			classes.PUT("/:id", h.Class.UpdateClass)
			classes.DELETE("/:id", h.Class.DeleteClass)
		}

		search := v1.Group("/search")
		{
			search.GET("/teacher", h.Search.ByTeacher)
			search.GET("/date", h.Search.ByDate)
			search.GET("/day", h.Search.ByDay)
		}

		sync := v1.Group("/sync")
		sync.Use(middleware.RateLimit(rdb, cfg.Sync.RateLimit, cfg.Sync.RateWindow))
		{
			sync.POST("/upload", h.Sync.Upload)
			sync.POST("/upload/async", h.Sync.UploadAsync)
		}

		export := v1.Group("/export")
		{
			export.GET("/schedule.xlsx", h.Export.ExportWorkbook)
			export.GET("/schedule.ics", h.Export.ExportCalendar)
		}
	}

	return r
}
