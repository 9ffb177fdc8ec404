package constants

const (
	APP_NAME = "bodhi"
	// prefix used to read config parameters from environment variables
	ENV_PREFIX = "BODHI"
	// config file name
	CONFIG_FILE_NAME = "config.toml"
	// config file type
	CONFIG_FILE_TYPE = "toml"
)
