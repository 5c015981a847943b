// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// store caches parsed prompt files so each is unmarshaled once.
type store struct {
	mu    sync.Mutex
	files map[string]map[string]string
}

var loaded = &store{files: make(map[string]map[string]string)}

func (s *store) file(filename string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prompts, ok := s.files[filename]; ok {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s.files[filename] = prompts
	return prompts, nil
}

// Get retrieves a prompt by filename and key. The filename does not
// include a path, e.g. "extraction.json".
func Get(filename, key string) (string, error) {
	prompts, err := loaded.file(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts required at initialization time; it
// panics instead of returning an error.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data.
func Format(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}

// ClearCache drops parsed prompt files. Useful for testing.
func ClearCache() {
	loaded.mu.Lock()
	loaded.files = make(map[string]map[string]string)
	loaded.mu.Unlock()
}
