package dashboard

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.json.tmpl
var templates embed.FS

// Defaults for the tables written by the GreptimeDB run writer.
const (
	DefaultRunTable       = "sentinel_runs"
	DefaultComponentTable = "sentinel_components"
)

var funcMap = template.FuncMap{
	"env": func(key string) (string, error) {
		v := os.Getenv(key)
		if v == "" {
			return "", fmt.Errorf("environment variable %s not set", key)
		}
		return v, nil
	},
	"envOr": func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	},
}

// Render executes the embedded dashboard templates and writes them to outDir.
func Render(outDir string) error {
	names, err := templates.ReadDir("templates")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, entry := range names {
		name := entry.Name()
		t, err := template.New(name).Funcs(funcMap).ParseFS(templates, "templates/"+name)
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(name, ".tmpl"))
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := t.Execute(f, nil); err != nil {
			f.Close()
			os.Remove(outPath)
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
