package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASKGATE_DEBUG") == "1"
}
