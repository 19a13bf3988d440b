package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by briefli.
const (
	EnvAPIKey     = "BRIEFLI_API_KEY"
	EnvProvider   = "BRIEFLI_PROVIDER"
	EnvModel      = "BRIEFLI_MODEL"
	EnvScriptsDir = "BRIEFLI_SCRIPTS_DIR"
)

// LoadDotEnv loads the .env file of each directory that has one, in order.
// Variables already set in the environment are never overridden, so earlier
// directories win over later ones. It returns the files that were loaded.
func LoadDotEnv(dirs ...string) ([]string, error) {
	var loaded []string
	seen := map[string]bool{}
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// PresuppliedKey returns an API key given through the environment:
// BRIEFLI_API_KEY first, then keyEnv (the provider's conventional variable).
// It returns "" when neither is set.
func PresuppliedKey(keyEnv string) string {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}
	if keyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(keyEnv))
}

// Selection is the provider and model to use. Empty fields mean "default".
type Selection struct {
	Provider string
	Model    string
}

// Select resolves the provider and model: environment first, then the
// stored record.
func Select(stored *File) Selection {
	sel := Selection{
		Provider: strings.ToLower(strings.TrimSpace(os.Getenv(EnvProvider))),
		Model:    strings.TrimSpace(os.Getenv(EnvModel)),
	}
	if stored != nil {
		if sel.Provider == "" {
			sel.Provider = strings.ToLower(stored.Provider)
		}
		// A stored model belongs to the stored provider.
		if sel.Model == "" && strings.EqualFold(stored.Provider, sel.Provider) {
			sel.Model = stored.Model
		}
	}
	return sel
}
