package middleware

import (
	"github.com/YJ-0220/product-sub000/internal/api/contract"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderTrackID = "X-Track-ID"

// TrackID reuses the caller's X-Track-ID or assigns a new one, and echoes it
// on the response.
func TrackID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trackID := c.Get(HeaderTrackID)
		if _, err := uuid.Parse(trackID); err != nil {
			trackID = uuid.NewString()
		}

		c.Locals(contract.TrackIDLocal, trackID)
		c.Set(HeaderTrackID, trackID)

		return c.Next()
	}
}
