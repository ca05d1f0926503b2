package models

// DetectionRequest is the body accepted by the /detect endpoint. Exactly one
// of Path or URL must be set; Path points at a file readable by the server,
// URL at a remote image (http, https or azure).
type DetectionRequest struct {
	Path    string `json:"path,omitempty"`
	URL     string `json:"url,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`
}

// Reference returns whichever source reference the request carries.
func (r DetectionRequest) Reference() string {
	if r.Path != "" {
		return r.Path
	}
	return r.URL
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DetectionResponse wraps a Report with request-scoped bookkeeping for the
// HTTP surface.
type DetectionResponse struct {
	Source            string  `json:"source"`
	Timestamp         string  `json:"timestamp"`
	ProcessingTimeSec float64 `json:"processing_time_sec"`
	Report
}
