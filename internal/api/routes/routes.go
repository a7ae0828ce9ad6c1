package routes

import (
	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/api/handlers"
	"ast-fleet-console-api-server/internal/api/middleware"
	"ast-fleet-console-api-server/internal/socket"
	"ast-fleet-console-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers into the API route table.
func SetupRouter(cfg config.Config, st store.Store, wsHub *socket.Hub) *gin.Engine {
	// Payload fields that belong to no entity are rejected, not dropped.
	gin.EnableJsonDecoderDisallowUnknownFields()

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	userHandler := &handlers.UserHandler{Store: st, Cfg: cfg}
	truckHandler := &handlers.TruckHandler{Store: st, Cfg: cfg}
	alertHandler := &handlers.AlertHandler{Store: st, Cfg: cfg, Hub: wsHub}
	routeHandler := &handlers.RouteHandler{Store: st, Cfg: cfg}
	visionHandler := &handlers.VisionHandler{}
	simulationHandler := &handlers.SimulationHandler{}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Store: st, Cfg: cfg}

	api := router.Group("/api")
	{
		// === ROUTES WITHOUT BEARER AUTH ===

		// The websocket upgrade authenticates via query token.
		api.GET("/ws", webSocketHandler.ServeWs)

		auth := api.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// === PROTECTED ROUTES ===

		protected := api.Group("/")
		protected.Use(middleware.Authenticate(cfg, st))
		{
			protected.POST("/auth/logout", userHandler.Logout)

			// User management requires the admin role.
			users := protected.Group("/users")
			users.Use(middleware.Authorize("admin"))
			{
				users.GET("", userHandler.GetAllUsers)
				users.POST("", userHandler.CreateUser)
				users.GET("/:username", userHandler.GetUser)
				users.PUT("/:username", userHandler.UpdateUser)
				users.DELETE("/:username", userHandler.DeleteUser)
			}

			trucks := protected.Group("/trucks")
			{
				trucks.GET("", truckHandler.GetAllTrucks)
				trucks.POST("", truckHandler.CreateTruck)
				trucks.GET("/stats", truckHandler.GetTruckStats)
				trucks.GET("/:truck_id", truckHandler.GetTruck)
				trucks.PUT("/:truck_id", truckHandler.UpdateTruck)
				trucks.DELETE("/:truck_id", truckHandler.DeleteTruck)
				trucks.GET("/:truck_id/telemetry", truckHandler.GetTruckTelemetry)
			}

			alerts := protected.Group("/alerts")
			{
				alerts.GET("", alertHandler.GetAllAlerts)
				alerts.POST("", alertHandler.CreateAlert)
				alerts.GET("/stats", alertHandler.GetAlertStats)
				alerts.GET("/recent", alertHandler.GetRecentAlerts)
				alerts.GET("/:alert_id", alertHandler.GetAlert)
				alerts.PUT("/:alert_id", alertHandler.UpdateAlert)
				alerts.DELETE("/:alert_id", alertHandler.DeleteAlert)
				alerts.POST("/:alert_id/resolve", alertHandler.ResolveAlert)
			}

			fleetRoutes := protected.Group("/routes")
			{
				fleetRoutes.GET("", routeHandler.GetAllRoutes)
				fleetRoutes.POST("", routeHandler.CreateRoute)
				fleetRoutes.GET("/stats", routeHandler.GetRouteStats)
				fleetRoutes.GET("/:route_id", routeHandler.GetRoute)
				fleetRoutes.PUT("/:route_id", routeHandler.UpdateRoute)
				fleetRoutes.DELETE("/:route_id", routeHandler.DeleteRoute)
				fleetRoutes.POST("/:route_id/start", routeHandler.StartRoute)
				fleetRoutes.POST("/:route_id/complete", routeHandler.CompleteRoute)
			}

			vision := protected.Group("/vision")
			{
				vision.GET("/stats", visionHandler.GetVisionStats)
				vision.GET("/detections", visionHandler.GetVisionDetections)
			}

			simulation := protected.Group("/simulation")
			{
				simulation.POST("/start", simulationHandler.StartSimulation)
				simulation.POST("/stop", simulationHandler.StopSimulation)
				simulation.GET("/status", simulationHandler.GetSimulationStatus)
			}
		}
	}

	return router
}
