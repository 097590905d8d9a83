// Package logging provides structured logging for the conversion service.
package logging

// Standard field names for consistent logging across the service.
const (
	// FieldRequestID is a unique identifier for each HTTP request.
	FieldRequestID = "request_id"

	// FieldDuration is the duration of an operation.
	FieldDuration = "duration"

	// FieldStatusCode is the HTTP status code of a response.
	FieldStatusCode = "status_code"

	// FieldMethod is the HTTP method of a request.
	FieldMethod = "method"

	// FieldPath is the URL path of an HTTP request.
	FieldPath = "path"

	// FieldRemoteAddr is the client's remote address.
	FieldRemoteAddr = "remote_addr"

	// FieldUserAgent is the client's user agent string.
	FieldUserAgent = "user_agent"

	// FieldError is the error message or description.
	FieldError = "error"

	// FieldComponent identifies the component generating the log.
	FieldComponent = "component"

	// FieldCurrencyFrom and FieldCurrencyTo describe a conversion.
	FieldCurrencyFrom = "from"
	FieldCurrencyTo   = "to"

	// FieldRateCount is the number of rates in a snapshot.
	FieldRateCount = "rate_count"
)
