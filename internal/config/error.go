package config

import (
	"fmt"
	"strings"
)

// defaultsSource names the configuration when no file was found.
const defaultsSource = "built-in defaults"

// ConfigError collects every problem found while loading one configuration
// so they can be reported together.
type ConfigError struct {
	Path    string   // empty when the built-in defaults were used
	Missing []string // unresolved ${NAME} references, with any :? message
	Errors  []string // validation failures, "field: problem"
}

// Source names where the configuration came from.
func (e *ConfigError) Source() string {
	if e.Path == "" {
		return defaultsSource
	}
	return e.Path
}

// Problems lists missing variables first, then validation failures.
func (e *ConfigError) Problems() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Errors))
	for _, m := range e.Missing {
		out = append(out, "environment variable not set: "+m)
	}
	return append(out, e.Errors...)
}

func (e *ConfigError) Error() string {
	problems := e.Problems()
	switch len(problems) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("invalid config (%s): %s", e.Source(), problems[0])
	}
	return fmt.Sprintf("invalid config (%s): %d problems:\n  - %s",
		e.Source(), len(problems), strings.Join(problems, "\n  - "))
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
