package logger

// Instance defines the interface for logging backends.
type Instance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

// Logger holds multiple logging backends and dispatches log calls to all of them.
type Logger struct {
	instances []Instance
}

var singleton *Logger

// Init initializes the global logger with one or more logging backends.
// It must be called before using any logging functions; calls made
// before Init are dropped.
func Init(instances ...Instance) {
	singleton = &Logger{
		instances: instances,
	}
}

// Log writes a message at the default log level to all configured backends.
func Log(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	for _, instance := range singleton.instances {
		instance.Log(message, keyvals...)
	}
}

// Debug writes a message at DEBUG level to all configured backends.
func Debug(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	for _, instance := range singleton.instances {
		instance.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level to all configured backends.
func Info(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	for _, instance := range singleton.instances {
		instance.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level to all configured backends.
func Warn(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	for _, instance := range singleton.instances {
		instance.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level to all configured backends.
func Error(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	for _, instance := range singleton.instances {
		instance.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	if singleton == nil {
		return
	}
	for _, instance := range singleton.instances {
		instance.Fatal(message, keyvals...)
	}
}
