package core

// Logger is any leveled logger.
// expected args fmt: error | map[string]interface{} | the identity of the request's caller
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
