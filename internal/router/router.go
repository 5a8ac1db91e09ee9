package router

import (
	"hospital-records/internal/handler"
	"hospital-records/internal/metrics"
	"hospital-records/internal/middleware"
	"hospital-records/internal/service"
	"hospital-records/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "hospital-records"

// Deps carries everything the HTTP surface needs.
type Deps struct {
	AuthService    *service.AuthService
	RecordsService *service.RecordsService
	ExportService  *service.ExportService
	Tokens         *utils.TokenManager
	Metrics        *metrics.Metrics
	Log            *zap.Logger
	AllowedOrigins []string
}

// New builds the gin engine with all routes registered.
func New(d Deps) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORS(d.AllowedOrigins))

	authHandler := handler.NewAuthHandler(d.AuthService, d.Tokens.RefreshTokenExpiry())
	departmentHandler := handler.NewDepartmentHandler(d.RecordsService)
	personnelHandler := handler.NewPersonnelHandler(d.RecordsService)
	reportHandler := handler.NewReportHandler(d.RecordsService, d.ExportService)

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	requireAuth := middleware.AuthMiddleware(d.Tokens)

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/register", requireAuth, middleware.RequireAdmin(), authHandler.Register)
	}

	api := r.Group("/api")
	api.Use(requireAuth)
	{
		api.GET("/summary", reportHandler.GetSummary)
		api.GET("/activity", reportHandler.GetActivity)
		api.GET("/export", reportHandler.ExportRoster)

		api.GET("/departments", departmentHandler.ListDepartments)
		api.GET("/departments/:name", departmentHandler.GetDepartment)
		api.GET("/departments/:name/patients", personnelHandler.ListDepartmentPatients)
		api.GET("/departments/:name/staff", personnelHandler.ListDepartmentStaff)
		api.GET("/patients", personnelHandler.ListPatients)
		api.GET("/staff", personnelHandler.ListStaff)
		api.GET("/patients/:id", personnelHandler.GetPatient)
		api.GET("/staff/:id", personnelHandler.GetStaffMember)

		// Admin-only routes
		api.POST("/departments", middleware.RequireAdmin(), departmentHandler.CreateDepartment)
		api.DELETE("/departments/:name", middleware.RequireAdmin(), departmentHandler.DeleteDepartment)
		api.POST("/departments/:name/patients", middleware.RequireAdmin(), personnelHandler.CreatePatient)
		api.POST("/departments/:name/staff", middleware.RequireAdmin(), personnelHandler.CreateStaff)
	}

	return r, nil
}
