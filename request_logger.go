package pushover

// RequestLogger receives the client's request log lines. Its method set
// matches resty's logger, and the client installs it there too.
//
// Sends are logged at debug, API rejections at warn and transport failures
// at error. Application tokens and user keys are never included.
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger discards everything. It is the default [RequestLogger].
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}
