package i

// Logger is the component logger used across services.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
