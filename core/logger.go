package core

// Logger is implemented by services/logger.
// expected args: error, map[string]interface{} or domain values the implementation knows how to report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
