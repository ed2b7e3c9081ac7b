package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ActivityRecorder persists the timestamp of a user's most recent request.
type ActivityRecorder interface {
	TouchLastRequest(ctx context.Context, userID uint, at time.Time) error
}

// LastRequest records the time of each authenticated request after the
// handler chain has run, so analytics can answer "when was this user last
// active". Failures are logged and never affect the response.
func LastRequest(recorder ActivityRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
			if touchErr := recorder.TouchLastRequest(c.UserContext(), uid, time.Now().UTC()); touchErr != nil {
				Logger.WarnContext(c.UserContext(), "failed to record last request time",
					"user_id", uid, "error", touchErr)
			}
		}

		return err
	}
}
