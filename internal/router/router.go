// Package router assembles the gin engine from handlers and middleware.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/klasstra/klasstra-api/internal/handler"
	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/policy"
	"github.com/klasstra/klasstra-api/internal/service"
	"github.com/klasstra/klasstra-api/pkg/config"
	"github.com/klasstra/klasstra-api/pkg/logger"
	corsmiddleware "github.com/klasstra/klasstra-api/pkg/middleware/cors"
	reqidmiddleware "github.com/klasstra/klasstra-api/pkg/middleware/requestid"
	"github.com/klasstra/klasstra-api/pkg/ratelimit"
)

// Dependencies carries everything the routes need.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      handler.Pinger
	Metrics *service.MetricsService
	Limiter *ratelimit.Limiter

	Auth          *service.AuthService
	Users         *service.UserService
	Classes       *service.ClassService
	Children      *service.ChildService
	Announcements *service.AnnouncementService
	Admin         *service.AdminService
	Audit         *service.AuditService
	Parents       *service.ParentService
	Uploads       *service.UploadService
	AI            *service.AIService
}

// New builds the HTTP engine.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	metricsHandler := handler.NewMetricsHandler(deps.Metrics, deps.DB)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.Static("/uploads", cfg.Upload.Dir)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	classHandler := handler.NewClassHandler(deps.Classes)
	childHandler := handler.NewChildHandler(deps.Children)
	announcementHandler := handler.NewAnnouncementHandler(deps.Announcements)
	teacherHandler := handler.NewTeacherHandler(deps.Classes, deps.Announcements)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Audit)
	parentHandler := handler.NewParentHandler(deps.Parents)
	uploadHandler := handler.NewUploadHandler(deps.Uploads)
	aiHandler := handler.NewAIHandler(deps.AI)

	var recorder middleware.AuditRecorder
	if deps.Audit != nil {
		recorder = deps.Audit
	}
	audit := func(entity, action string) gin.HandlerFunc {
		return middleware.Audit(recorder, entity, action)
	}
	authed := middleware.JWT(deps.Auth)
	limited := middleware.RateLimit(deps.Limiter, deps.Metrics, log)
	admins := middleware.RequirePolicy(policy.CanManageUsers)
	authors := middleware.RequirePolicy(policy.CanCreateAnnouncements)
	parents := middleware.RequirePolicy(policy.IsParent)
	teachers := middleware.RequirePolicy(policy.IsTeacher)

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	users := api.Group("/users")
	users.POST("/", userHandler.Create)
	users.GET("/me", authed, userHandler.Me)
	users.GET("/:id", authed, admins, userHandler.Get)

	classes := api.Group("/classes")
	classes.GET("/", classHandler.List)
	classes.POST("/", authed, admins, audit(models.AuditEntityClass, models.AuditActionCreate), classHandler.Create)

	children := api.Group("/children", authed, parents)
	children.POST("/", audit(models.AuditEntityChild, models.AuditActionCreate), childHandler.Create)
	children.GET("/my", childHandler.ListMine)

	announcements := api.Group("/announcements", authed)
	announcements.POST("/", authors, limited, audit(models.AuditEntityAnnouncement, models.AuditActionCreate), announcementHandler.Create)
	announcements.GET("/for_parent", parents, announcementHandler.ForParent)
	announcements.GET("/teacher/parents", authors, announcementHandler.ReachableParents)

	teacher := api.Group("/teacher", authed, teachers)
	teacher.GET("/my-classes", teacherHandler.MyClasses)
	teacher.GET("/my-announcements", teacherHandler.MyAnnouncements)
	teacher.POST("/announcements", limited, audit(models.AuditEntityAnnouncement, models.AuditActionCreate), teacherHandler.CreateAnnouncements)
	teacher.PATCH("/announcements/:id", audit(models.AuditEntityAnnouncement, models.AuditActionUpdate), teacherHandler.UpdateAnnouncement)
	teacher.DELETE("/announcements/:id", audit(models.AuditEntityAnnouncement, models.AuditActionDelete), teacherHandler.DeleteAnnouncement)

	admin := api.Group("/admin", authed, admins)
	admin.PUT("/user/:id/class_rep", audit(models.AuditEntityUser, models.AuditActionPromote), adminHandler.PromoteClassRep)
	admin.POST("/assign-teacher-class", audit(models.AuditEntityTeacherClass, models.AuditActionAssign), adminHandler.AssignTeacher)
	admin.GET("/audit-logs", adminHandler.AuditLogs)

	parentRoutes := api.Group("/parents", authed, admins)
	parentRoutes.GET("/", parentHandler.List)
	parentRoutes.GET("/export", parentHandler.Export)

	api.POST("/upload/", uploadHandler.Upload)
	api.POST("/ai/generate", authed, authors, aiHandler.Generate)

	return r
}
