package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driverdash/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, mapSvc *service.MapService, chatSvc *service.ChatService, recommendSvc *service.RecommendService, repo service.ReferenceRepository) {
	handler := NewHandler(mapSvc, chatSvc, recommendSvc, repo)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Map surface endpoints
		api.Get("/locations", handler.GetLocations)
		api.Get("/demand", handler.GetDemand)
		api.Get("/map/frame", handler.GetMapFrame)

		// Driver allocation advice
		api.Get("/recommendation", handler.GetRecommendation)

		// Shift-length extraction
		api.Post("/duration/parse", handler.ParseDuration)

		// Conversational widget sessions
		api.Post("/chat/sessions", handler.CreateChatSession)
		api.Get("/chat/sessions/:id", handler.GetChatSession)
		api.Post("/chat/sessions/:id/messages", handler.PostChatMessage)
		api.Post("/chat/sessions/:id/listen", handler.StartListening)
		api.Post("/chat/sessions/:id/stop", handler.StopListening)
		api.Post("/chat/sessions/:id/transcript", handler.PostTranscript)
		api.Post("/chat/sessions/:id/error", handler.PostStreamError)
		api.Delete("/chat/sessions/:id", handler.DeleteChatSession)
	}
}
