// Package levels holds the authored level content as data files. The
// schema lives in the level package; this one only embeds and lists.
package levels

import (
	"embed"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Read returns the raw bytes of one level data file.
func Read(name string) ([]byte, error) {
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	return LevelsFS.ReadFile(name)
}

// List returns the names of all embedded level data files.
func List() ([]string, error) {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
