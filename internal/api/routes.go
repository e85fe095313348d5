package api

import (
	"net/http"

	"planner/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	calendarService service.CalendarService,
	planService service.PlanService,
	plannerService service.PlannerService,
) {

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	calendarHandler := NewCalendarHandler(calendarService)
	planHandler := NewPlanHandler(planService)
	plannerHandler := NewPlannerHandler(plannerService)

	router.Use(RequestIDMiddleware())

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- User Routes ---
		userGroup := protected.Group("/users")
		{
			userGroup.GET("/me", userHandler.GetProfile)
			userGroup.GET("", userHandler.ListUsers)
			userGroup.PUT("/me", userHandler.UpdateProfile)
			userGroup.DELETE("/me", userHandler.DeleteAccount)
		}

		// --- Calendar Routes ---
		eventGroup := protected.Group("/calendar/events")
		{
			eventGroup.POST("", calendarHandler.CreateEvent)
			eventGroup.GET("", calendarHandler.ListEvents)
			eventGroup.GET("/:eventId", calendarHandler.GetEvent)
			eventGroup.PUT("/:eventId", calendarHandler.UpdateEvent)
			eventGroup.DELETE("/:eventId", calendarHandler.DeleteEvent)
		}

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.PUT("/:planId", planHandler.UpdatePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}

		// --- Planner Routes ---
		plannerGroup := protected.Group("/planner")
		{
			plannerGroup.POST("/create-training-plan", plannerHandler.CreateTrainingPlan)
		}
	}
}
