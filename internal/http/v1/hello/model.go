package hello

const (
	// WelcomeMessage is the body of GET /.
	WelcomeMessage = "Hello, World! Welcome to Spring Boot API"
	// HelloMessage is the body of GET /hello.
	HelloMessage = "Hello from Spring Boot!"
	// StatusPayload is the exact body of GET /api/status. It is written verbatim,
	// spacing included, rather than re-encoded from Status.
	StatusPayload = `{"status": "OK", "message": "Spring Boot API is running"}`
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Status documents the shape of StatusPayload for clients decoding it.
type Status struct {
	Status  string `json:"status"  doc:"Service status" example:"OK"`
	Message string `json:"message" doc:"Status message" example:"Spring Boot API is running"`
}

// RawOutput carries a preformatted body with an explicit content type.
type RawOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
