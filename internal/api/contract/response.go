package contract

import "github.com/gofiber/fiber/v2"

const TrackIDLocal = "trackID"

type Response struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message,omitempty"`
	TrackID    string `json:"x_track_id"`
	Result     any    `json:"result"`
}

// TrackID returns the request id stored by the track id middleware, if any.
func TrackID(c *fiber.Ctx) string {
	trackID, _ := c.Locals(TrackIDLocal).(string)
	return trackID
}
