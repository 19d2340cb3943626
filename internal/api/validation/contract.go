package validation

type Logger interface {
	Warn(format string, v ...interface{})
}

type Metrics interface {
	IncValidationRejected(validator string)
}
