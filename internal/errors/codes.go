package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrMissingConfig ErrorCode = "missing_configuration"
	ErrBindFlags     ErrorCode = "bind_flags_failed"
	ErrReadConfig    ErrorCode = "read_config_failed"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Remote session errors
	ErrAuthentication ErrorCode = "authentication_failed"
	ErrLogout         ErrorCode = "logout_failed"

	// Report errors
	ErrLookup         ErrorCode = "lookup_failed"
	ErrNoEntities     ErrorCode = "no_entities"
	ErrNoData         ErrorCode = "no_data"
	ErrWrite          ErrorCode = "write_failed"
	ErrUnknownFormat  ErrorCode = "unknown_format"
	ErrOperationAbort ErrorCode = "operation_aborted"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrInvalidConfig:   "Invalid configuration",
	ErrMissingConfig:   "Missing configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read config file",
	ErrInvalidLogLevel: "Invalid log level",
	ErrAuthentication:  "Failed to authenticate against the monitoring server",
	ErrLogout:          "Failed to terminate remote session",
	ErrLookup:          "Failed to fetch data from the monitoring server",
	ErrNoEntities:      "No hosts found in group",
	ErrNoData:          "No data collected from hosts",
	ErrWrite:           "Failed to write report",
	ErrUnknownFormat:   "Unknown report format",
	ErrOperationAbort:  "Operation aborted",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
