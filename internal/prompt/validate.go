package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var alphaDash = regexp.MustCompile(`^[a-z][a-z_0-9-]+$`)

// AlphaDash accepts lowercase names made of letters, digits, underscores and
// dashes that start with a letter.
func AlphaDash(v any) error {
	s, _ := v.(string)
	if !alphaDash.MatchString(s) {
		return fmt.Errorf("must start with a lowercase letter and may only contain lowercase letters, digits, underscores and dashes")
	}
	return nil
}

type ociArtifact struct {
	Artifact *string `json:"artifact"`
	Output   *string `json:"output"`
}

// OCIArtifacts accepts "" or a JSON array of {"artifact": ..., "output": ...}.
func OCIArtifacts(v any) error {
	s, _ := v.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return fmt.Errorf("invalid JSON format for OCI artifacts")
	}
	if _, ok := raw.([]any); !ok {
		return fmt.Errorf("OCI artifacts must be a JSON array")
	}
	var items []ociArtifact
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return fmt.Errorf(`each OCI artifact must have "artifact" and "output" string properties`)
	}
	for _, item := range items {
		if item.Artifact == nil || item.Output == nil {
			return fmt.Errorf(`each OCI artifact must have "artifact" and "output" string properties`)
		}
	}
	return nil
}

// Required rejects blank strings.
func Required(v any) error {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}
