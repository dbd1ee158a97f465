// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrNoDocument is returned by Read when the rules file does not exist.
var ErrNoDocument = errors.New("rules document not found")

// Loader reads and writes the rules document at a fixed path. Files ending in
// .yaml or .yml are YAML, anything else is JSON. ${VAR} and ${VAR:default}
// references are expanded from the environment before parsing.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Path() string {
	return l.path
}

// Load returns the normalized ruleset. A missing or malformed file is replaced
// with the defaults, which are written back to disk.
func (l *Loader) Load() *Ruleset {
	rs, err := l.Read()
	if err == nil {
		logrus.Infof("loaded rules from %s", l.path)
		return rs
	}

	if errors.Is(err, ErrNoDocument) {
		logrus.Infof("no rules document at %s, writing defaults", l.path)
	} else {
		logrus.Warnf("failed to read rules from %s, recreating defaults: %v", l.path, err)
	}
	if err := l.WriteDefaults(); err != nil {
		logrus.Warnf("failed to write default rules: %v", err)
	}
	return Defaults()
}

// Read parses the document strictly. Unlike Load it never falls back.
func (l *Loader) Read() (*Ruleset, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	doc, err := l.decode([]byte(expandEnvVars(string(data))))
	if err != nil {
		return nil, err
	}
	return Normalize(doc), nil
}

// WriteDefaults writes DefaultDocument to the loader's path.
func (l *Loader) WriteDefaults() error {
	return l.Write(DefaultDocument())
}

func (l *Loader) Write(doc *Document) error {
	data, err := l.encode(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create rules directory: %w", err)
		}
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}

func (l *Loader) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(l.path))
	return ext == ".yaml" || ext == ".yml"
}

func (l *Loader) decode(data []byte) (*Document, error) {
	var doc Document
	if l.isYAML() {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML rules: %w", err)
		}
		return &doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON rules: %w", err)
	}
	return &doc, nil
}

func (l *Loader) encode(doc *Document) ([]byte, error) {
	if l.isYAML() {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML rules: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON rules: %w", err)
	}
	return append(data, '\n'), nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
// Bare $VAR references are left untouched so message templates can use '$'.
func expandEnvVars(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])

		key := s[start+2 : start+end]
		parts := strings.SplitN(key, ":", 2)
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}
		value := os.Getenv(parts[0])
		if value == "" {
			value = defaultValue
		}
		b.WriteString(value)
		s = s[start+end+1:]
	}
}
