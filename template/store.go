// Package template holds the reply templates used when AI generation is
// unavailable or fails. Templates are keyed by message category and loaded
// once at startup from a JSON file.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/astegaru/linkedin-responder/classify"
	"github.com/astegaru/linkedin-responder/config"
)

// Store holds reply template variants per category. It is read-only during a
// cycle; Reload may only be called between cycles.
type Store struct {
	mu       sync.Mutex
	path     string
	variants map[classify.Category][]string
	next     map[classify.Category]int // round-robin cursor per category
}

// Load reads templates from a JSON file mapping category names to ordered
// variant lists. An empty path returns the built-in defaults. A malformed
// file or a missing category is a fatal configuration error: the agent must
// never run without fallback coverage.
func Load(path string) (*Store, error) {
	if path == "" {
		return newStore("", DefaultTemplates()), nil
	}

	variants, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return newStore(path, variants), nil
}

func newStore(path string, variants map[classify.Category][]string) *Store {
	return &Store{
		path:     path,
		variants: variants,
		next:     make(map[classify.Category]int, len(variants)),
	}
}

func readFile(path string) (map[classify.Category][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, config.Errorf("reading template file %s: %v", path, err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, config.Errorf("parsing template file %s: %v", path, err)
	}

	variants := make(map[classify.Category][]string, len(raw))
	for name, list := range raw {
		cat, ok := classify.ParseCategory(name)
		if !ok {
			return nil, config.Errorf("template file %s: unknown category %q", path, name)
		}
		variants[cat] = list
	}

	if err := validate(variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// validate checks that every category the classifier can emit has at least
// one non-empty variant.
func validate(variants map[classify.Category][]string) error {
	for _, cat := range classify.Categories {
		list := variants[cat]
		if len(list) == 0 {
			return config.Errorf("templates: category %q has no variants", cat)
		}
		for i, v := range list {
			if strings.TrimSpace(v) == "" {
				return config.Errorf("templates: category %q variant %d is empty", cat, i)
			}
		}
	}
	return nil
}

// Render returns the next variant for a category with placeholders
// substituted. Variants rotate round-robin so repeated replies in the same
// category don't all read identically; the rotation is deterministic given
// the store's call history.
func (s *Store) Render(cat classify.Category, vars map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.variants[cat]
	if len(list) == 0 {
		return "", fmt.Errorf("no templates for category %q", cat)
	}

	i := s.next[cat] % len(list)
	s.next[cat]++

	return RenderContent(list[i], vars), nil
}

// Reload re-reads the template file. On any error the previous templates
// stay in effect. No-op for the built-in defaults.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	variants, err := readFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.variants = variants
	s.mu.Unlock()
	return nil
}

// Variants returns a copy of the variant list for a category.
func (s *Store) Variants(cat classify.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.variants[cat]...)
}

// Categories returns the configured categories in priority order.
func (s *Store) Categories() []classify.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cats []classify.Category
	for _, cat := range classify.Categories {
		if len(s.variants[cat]) > 0 {
			cats = append(cats, cat)
		}
	}
	return cats
}

// RenderContent substitutes {placeholder} variables in content. Unknown
// placeholders are left as literal text rather than failing.
func RenderContent(content string, vars map[string]string) string {
	result := content
	for key, value := range vars {
		if !strings.HasPrefix(key, "{") {
			key = "{" + key + "}"
		}
		result = strings.ReplaceAll(result, key, value)
	}
	return result
}

// ExtractVariables finds all {variable} placeholders in content, in order of
// first appearance.
func ExtractVariables(content string) []string {
	var vars []string
	seen := make(map[string]bool)

	inVar := false
	varStart := 0
	for i, ch := range content {
		switch {
		case ch == '{':
			inVar = true
			varStart = i
		case ch == '}' && inVar:
			name := content[varStart : i+1]
			if !seen[name] {
				vars = append(vars, name)
				seen[name] = true
			}
			inVar = false
		}
	}
	return vars
}
