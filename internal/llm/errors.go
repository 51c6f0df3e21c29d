package llm

import "errors"

var (
	// ErrMissingAPIKey indicates a client was constructed without a credential.
	// It is a configuration error and is never absorbed by a fallback.
	ErrMissingAPIKey = errors.New("ai api key not configured")

	// ErrUnknownProvider indicates the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown ai provider")

	// ErrUnavailable indicates the AI endpoint is unreachable.
	ErrUnavailable = errors.New("ai service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("ai request timed out")

	// ErrAuth indicates the service rejected the credential.
	ErrAuth = errors.New("ai service rejected credentials")

	// ErrUpstreamStatus indicates a non-success HTTP status.
	ErrUpstreamStatus = errors.New("ai service returned an error status")

	// ErrEmptyResponse indicates the response carried no text content.
	ErrEmptyResponse = errors.New("ai response has no text content")

	// ErrInvalidOutput indicates the response text could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid ai output format")

	// ErrInvalidImage indicates the image input could not be decoded.
	ErrInvalidImage = errors.New("invalid image input")
)

// ErrorCode maps an error to the short code used in call events and
// plan records.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrAuth):
		return "AUTH"
	case errors.Is(err, ErrUpstreamStatus):
		return "STATUS"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY_RESPONSE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrInvalidImage):
		return "INVALID_IMAGE"
	case errors.Is(err, ErrMissingAPIKey):
		return "MISSING_API_KEY"
	default:
		return "UNKNOWN"
	}
}
