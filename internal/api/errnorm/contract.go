package errnorm

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Metrics interface {
	IncStorageError(kind string)
}
