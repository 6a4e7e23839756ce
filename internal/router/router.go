package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/handler"
	"github.com/siswadata/rapor-backend/internal/middleware"
	"github.com/siswadata/rapor-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student    *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	Grade      *handler.GradeHandler
	Recap      *handler.RecapHandler
	Import     *handler.ImportHandler
	Backup     *handler.BackupHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve written snapshot files statically with aggressive caching:
	// each file is immutable once the worker writes it.
	backupsGroup := router.Group("/backups")
	backupsGroup.Use(middleware.CacheControl(31536000))
	{
		backupsGroup.Static("/", cfg.BackupDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Read API ──────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/classes", handlers.Student.ListClasses)
		api.GET("/classes/resolve", handlers.Student.ResolveClass)
		api.GET("/students", handlers.Student.ListStudents)

		api.GET("/attendance", handlers.Attendance.GetSheet)
		api.GET("/attendance/entries", handlers.Attendance.ListSheets)
		api.GET("/attendance/tally", handlers.Attendance.Tally)
		api.GET("/attendance/tally/export", handlers.Attendance.TallyExport)

		api.GET("/grades", handlers.Grade.ListGrades)
		api.GET("/recap", handlers.Recap.Recap)
		api.GET("/recap/export", handlers.Recap.RecapExport)

		api.GET("/backup/snapshot", handlers.Backup.Snapshot)
		api.GET("/system/status", handlers.System.Status)
	}

	// ─── Write API (rate limited) ──────────────────────────────────────
	writeLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	writeAPI := router.Group("/api/v1")
	writeAPI.Use(writeLimiter.Middleware())
	{
		writeAPI.PUT("/attendance", handlers.Attendance.SaveSheet)
		writeAPI.POST("/grades", handlers.Grade.SaveGrade)
		writeAPI.POST("/grades/batch", handlers.Grade.SaveGradeBatch)
		writeAPI.POST("/students/import", handlers.Import.ImportStudents)
		writeAPI.POST("/import", handlers.Import.ImportCollections)
		writeAPI.POST("/backup/restore", handlers.Backup.Restore)
		writeAPI.POST("/backup/enqueue", handlers.Backup.Enqueue)
	}

	return router
}
