package config

import "os"

// GetRuntimePath resolves the runtime directory before any config
// struct is parsed, so the .env file inside it can be loaded first.
func GetRuntimePath() string {
	path := os.Getenv("ASKGATE_RUNTIME_PATH")
	if path == "" {
		path = ".askgate"
	}
	return path
}
