package logger

const (
	RequestIdKey = "X-Brandboost-Request-Id"
)

var LogDir string
