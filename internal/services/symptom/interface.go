// File: internal/services/symptom/interface.go
package symptom

// Logger mirrors the service logging interface without importing the
// parent services package.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
