package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList decodes either a JSON array of strings or a single
// comma-separated string. Entries are trimmed and blanks dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*l = ParseList(text)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expected a list of strings or comma-separated text")
	}
	items := make([]string, 0, len(raw))
	for i, element := range raw {
		var item string
		if err := json.Unmarshal(element, &item); err != nil {
			return fmt.Errorf("entry %d is not a string", i)
		}
		items = append(items, item)
	}
	*l = CleanList(items)
	return nil
}

// ParseList splits comma-separated text into a cleaned list.
func ParseList(text string) []string {
	return CleanList(strings.Split(text, ","))
}

// CleanList trims every entry and drops the empty ones. It never returns nil.
func CleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
