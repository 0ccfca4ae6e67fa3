package domain

// LogLevel is the severity attached to log lines and telemetry vertex logs.
// Values line up with log/slog so adapters can convert directly.
type LogLevel int

const (
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

func (l LogLevel) String() string {
	switch {
	case l >= LogLevelError:
		return "ERROR"
	case l >= LogLevelWarn:
		return "WARN"
	default:
		return "INFO"
	}
}
