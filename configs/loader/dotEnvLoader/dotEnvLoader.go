package dotEnvLoader

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader reads a .env file and overlays the process environment on top,
// so deployed environments win over local defaults.
type DotEnvLoader struct {
	Path string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	const op = "dotEnvLoader.Load"

	path := l.Path
	if path == "" {
		path = ".env"
	}

	envs, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: failed to read %s: %w", op, path, err)
		}
		envs = make(map[string]string)
	}

	for _, pair := range os.Environ() {
		if key, value, ok := strings.Cut(pair, "="); ok {
			envs[key] = value
		}
	}

	return envs, nil
}
