package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/inventopredict/backend-go/internal/api/handlers"
	"github.com/inventopredict/backend-go/internal/api/middleware"
	"github.com/inventopredict/backend-go/internal/service"
)

type Services struct {
	Prediction *service.PredictionService
	Reminder   *service.ReminderService
}

func NewRouter(services *Services, uploadDir string, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Prediction != nil {
			predictionHandler := handlers.NewPredictionHandler(services.Prediction, uploadDir)
			apiGroup.POST("/predict", predictionHandler.Predict)
			apiGroup.GET("/products/:product_id/dashboard", predictionHandler.Dashboard)
		}

		if services.Reminder != nil {
			reminderHandler := handlers.NewReminderHandler(services.Reminder)
			reminderGroup := apiGroup.Group("/reminders")
			{
				reminderGroup.POST("", reminderHandler.Create)
				reminderGroup.DELETE("", reminderHandler.Clear)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
