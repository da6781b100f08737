package command

const (
	JSONOutputFlag = "json"
	LogLevelFlag   = "log-level"

	DefaultLogLevel = "info"
)
