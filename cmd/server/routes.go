package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"student-portal.backend/internal/interfaces/http/handlers"
	"student-portal.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	registrationHandler *handlers.RegistrationHandler
	authHandler         *handlers.AuthHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, deps routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	registration := v1.Group("/registration")
	{
		registration.POST("/register", middleware.IdempotencyMiddleware(), deps.registrationHandler.Register)
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/login", deps.authHandler.Login)
		auth.GET("/me", deps.authMiddleware, deps.authHandler.GetMe)
		auth.POST("/change-password", deps.authMiddleware, deps.authHandler.ChangePassword)
	}

	admin := v1.Group("/admin")
	admin.Use(deps.authMiddleware, middleware.RequireActive(), middleware.RequireAdmin())
	{
		admin.GET("/verifications", deps.adminHandler.ListPendingVerifications)
		admin.POST("/verifications/:userId", deps.adminHandler.ProcessVerification)
	}
}
