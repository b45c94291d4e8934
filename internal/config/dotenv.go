package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads dotenv files for the given environment.
// Priority: .env.<env>.local > .env.<env> > .env.local > .env
// godotenv.Load never overwrites variables that are already set,
// so the OS environment always wins and earlier files beat later ones.
func LoadDotEnv(env string) []string {
	var candidates []string
	if env != "" {
		candidates = append(candidates, ".env."+env+".local", ".env."+env)
	}
	candidates = append(candidates, ".env.local", ".env")

	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// AppEnv returns APP_ENV, defaulting to "local"
func AppEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "local"
}

// ConfigPath returns configs/config.<env>.yaml
func ConfigPath(env string) string {
	return "configs/config." + env + ".yaml"
}
