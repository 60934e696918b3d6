package main

import (
	"net/http"

	"github.com/andsetyobudi/ban-bengkel/internal/handler"
	"github.com/andsetyobudi/ban-bengkel/shared/middleware"
	"github.com/gin-gonic/gin"
)

// newRouter wires the admin API. A nil auth middleware leaves the admin
// routes open (AUTH_DISABLED).
func newRouter(transaksiHandler *handler.TransaksiHandler, authHandler *handler.AuthHandler, auth gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/admin")
	api.POST("/login", authHandler.Login)

	protected := api.Group("")
	if auth != nil {
		protected.Use(auth)
	}
	{
		protected.POST("/transaksi", transaksiHandler.CreateTransaksi)
		protected.GET("/transaksi", transaksiHandler.ListTransaksi)
		protected.GET("/transaksi/export", transaksiHandler.ExportTransaksi)
		protected.GET("/transaksi/:id", transaksiHandler.GetTransaksi)
		protected.DELETE("/transaksi/:id", transaksiHandler.DeleteTransaksi)
	}

	return router
}
