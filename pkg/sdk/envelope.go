package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The backend wraps payloads inconsistently: {data: {data: X}}, {data: X} or
// a bare X. Every response body passes through the helpers below so callers
// always receive the innermost payload.

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// readBody decodes a JSON response body into a generic value.
// An empty body decodes to nil.
func readBody(r io.Reader) (any, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return v, nil
}

// UnwrapList returns the record list inside an envelope. Non-object elements
// are skipped. A payload that holds no list yields an empty, non-nil slice.
func UnwrapList(v any) []Record {
	for _, candidate := range envelopeCandidates(v) {
		list, ok := candidate.([]any)
		if !ok {
			continue
		}
		records := make([]Record, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, Record(obj))
			}
		}
		return records
	}
	return []Record{}
}

// UnwrapObject returns the innermost object inside an envelope, or nil.
func UnwrapObject(v any) map[string]any {
	for _, candidate := range envelopeCandidates(v) {
		if obj, ok := candidate.(map[string]any); ok {
			return obj
		}
	}
	return nil
}

// envelopeCandidates lists data.data, data and the root, innermost first.
func envelopeCandidates(v any) []any {
	candidates := make([]any, 0, 3)
	root, ok := v.(map[string]any)
	if !ok {
		return append(candidates, v)
	}
	if data, ok := root["data"]; ok && data != nil {
		if inner, ok := data.(map[string]any); ok {
			if nested, ok := inner["data"]; ok && nested != nil {
				candidates = append(candidates, nested)
			}
		}
		candidates = append(candidates, data)
	}
	return append(candidates, v)
}

// messageOf extracts a human readable message from an error body.
func messageOf(v any) string {
	for _, candidate := range envelopeCandidates(v) {
		obj, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range []string{"message", "error"} {
			if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
