package middleware

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TrackID string `json:"x_track_id,omitempty"`
}
