package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driverdash/backend/internal/duration"
	"github.com/driverdash/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	mapSvc       *service.MapService
	chatSvc      *service.ChatService
	recommendSvc *service.RecommendService
	repo         service.ReferenceRepository
}

// NewHandler creates a new handler
func NewHandler(mapSvc *service.MapService, chatSvc *service.ChatService, recommendSvc *service.RecommendService, repo service.ReferenceRepository) *Handler {
	return &Handler{
		mapSvc:       mapSvc,
		chatSvc:      chatSvc,
		recommendSvc: recommendSvc,
		repo:         repo,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if err := h.repo.Health(c.Context()); err != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"service":  "driverdash-backend",
		"version":  "1.0.0",
		"sessions": h.chatSvc.Count(),
	})
}

// GetLocations returns the location table, optionally filtered by city
func (h *Handler) GetLocations(c *fiber.Ctx) error {
	city := c.QueryInt("city", 0)

	locations := h.mapSvc.Locations()
	if city > 0 {
		locations = h.mapSvc.LocationsByCity(city)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    locations,
		"count":   len(locations),
	})
}

// GetDemand returns per-location demand values and color tiers for one
// (condition, city, hours) selection
func (h *Handler) GetDemand(c *fiber.Ctx) error {
	condition := c.Query("condition", "clear")
	city := c.QueryInt("city", 1)
	hours := c.QueryFloat("hours", 0)
	if city < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "city must be positive")
	}

	displays := h.mapSvc.DemandDisplays(condition, city, hours)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    displays,
	})
}

// GetMapFrame returns projected markers and active route lines for one draw
func (h *Handler) GetMapFrame(c *fiber.Ctx) error {
	condition := c.Query("condition", "clear")
	city := c.QueryInt("city", 1)
	hours := c.QueryFloat("hours", 0)
	width := c.QueryFloat("width", 800)
	height := c.QueryFloat("height", 600)
	if city < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "city must be positive")
	}
	if width <= 0 || height <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "width and height must be positive")
	}

	frame := h.mapSvc.RenderFrame(condition, city, hours, width, height)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    frame,
	})
}

// GetRecommendation returns greedy driver allocation advice
func (h *Handler) GetRecommendation(c *fiber.Ctx) error {
	condition := c.Query("condition", "clear")
	city := c.QueryInt("city", 1)
	hours := c.QueryFloat("hours", 0)
	drivers := c.QueryInt("drivers", 30)
	if city < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "city must be positive")
	}
	if drivers < 1 || drivers > 10000 {
		return fiber.NewError(fiber.StatusBadRequest, "drivers must be between 1 and 10000")
	}

	rec := h.recommendSvc.Recommend(condition, city, hours, drivers)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rec,
	})
}

// parseRequest is the body for duration parsing and typed chat messages
type parseRequest struct {
	Text string `json:"text"`
}

// ParseDuration converts a natural-language shift length into hours
func (h *Handler) ParseDuration(c *fiber.Ctx) error {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	hours, detected := duration.Parse(req.Text)

	resp := fiber.Map{
		"success":  true,
		"detected": detected,
	}
	if detected {
		resp["hours"] = hours
	}
	return c.JSON(resp)
}

// CreateChatSession opens a new conversation
func (h *Handler) CreateChatSession(c *fiber.Ctx) error {
	session := h.chatSvc.CreateSession()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// GetChatSession returns the current conversation state
func (h *Handler) GetChatSession(c *fiber.Ctx) error {
	session, ok := h.chatSvc.Session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// PostChatMessage submits typed text to a session
func (h *Handler) PostChatMessage(c *fiber.Ctx) error {
	session, ok := h.chatSvc.Session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session.SubmitText(req.Text)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// StartListening asks the session's recognizer to begin a stream
func (h *Handler) StartListening(c *fiber.Ctx) error {
	session, ok := h.chatSvc.Session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	session.StartListening()
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// StopListening requests graceful termination of the stream
func (h *Handler) StopListening(c *fiber.Ctx) error {
	session, ok := h.chatSvc.Session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	session.StopListening()
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// transcriptRequest delivers one client-side recognition result
type transcriptRequest struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"is_final"`
}

// PostTranscript delivers a recognition result into the session
func (h *Handler) PostTranscript(c *fiber.Ctx) error {
	session, ok := h.chatSvc.Session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	var req transcriptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session.HandleTranscript(req.Transcript, req.IsFinal)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// streamErrorRequest delivers one client-side recognition error
type streamErrorRequest struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PostStreamError records a recoverable recognition error in the session
func (h *Handler) PostStreamError(c *fiber.Ctx) error {
	session, ok := h.chatSvc.Session(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	var req streamErrorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session.HandleStreamError(req.Code, req.Message)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionView(session),
	})
}

// DeleteChatSession closes a session, aborting any in-flight recognition
func (h *Handler) DeleteChatSession(c *fiber.Ctx) error {
	if !h.chatSvc.CloseSession(c.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}
