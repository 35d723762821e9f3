package utils

const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal log entry of a failed run.
	ApplicationExecutionFailedMessage = "codedigest failed"
)
