package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlDomain describes driver domain URL param.
	urlDomain muxKeys = "domain"
	// urlAddress describes module address URL param.
	urlAddress muxKeys = "address"
	// urlCommand describes module command URL param.
	urlCommand muxKeys = "command"
	// urlOptions describes command options URL param.
	urlOptions muxKeys = "options"
	// urlFilter describes events filter query param.
	urlFilter = "filter"
	// ctxtRequestID describes request ID in the context.
	ctxtRequestID muxKeys = "request_id"
	// headerRequestID describes request ID header.
	headerRequestID = "X-Request-ID"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
)
