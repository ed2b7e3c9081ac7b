package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLikesAnalytics handles GET /api/analytics/likes?date_from=YYYY-MM-DD&date_to=YYYY-MM-DD.
// Days without likes are omitted; a window with no likes at all is a 404.
func (s *Server) GetLikesAnalytics(c *fiber.Ctx) error {
	rows, err := s.analyticsService.LikesPerDay(c.Context(),
		c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"analytics": rows,
	})
}
