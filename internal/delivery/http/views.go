package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driverdash/backend/internal/chat"
)

// sessionView shapes a chat session for JSON responses.
func sessionView(s *chat.Session) fiber.Map {
	view := fiber.Map{
		"id":                  s.ID(),
		"state":               s.State(),
		"turns":               s.Turns(),
		"interim":             s.Interim(),
		"listening_supported": s.ListeningSupported(),
	}
	if hours, ok := s.LastHours(); ok {
		view["last_hours"] = hours
	}
	return view
}
