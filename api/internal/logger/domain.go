package logger

const NA = "N/A"

// log level
const (
	LL_ERROR LogLevel = iota
	LL_FATAL
	LL_INFO
	LL_DEBUG
	LL_WARN
)

// log stream
const (
	LS_MONITOR Logstream = iota
	LS_FATAL
	LS_NATS
	LS_ALERTS
	LS_HTTP
)

type Logstream uint8
type LogLevel uint8

func (l Logstream) ToString() string {
	return [...]string{"monitor", "fatal", "nats", "alerts", "http"}[l]
}

func (l LogLevel) ToString() string {
	return [...]string{"ERROR", "FATAL", "INFO", "DEBUG", "WARN"}[l]
}
