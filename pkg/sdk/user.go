package sdk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Well-known roles. Roles are compared case-insensitively and stored lower-case.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// UserSnapshot is the cached identity of the signed-in user. The backend is
// the source of truth; this copy is only used for gating and display.
type UserSnapshot struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Email string `json:"email" mapstructure:"email"`
	Role  string `json:"role" mapstructure:"role"`
}

// NormalizeRole lower-cases and trims a role string.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// IsAdmin reports whether the snapshot carries the admin role.
func (u *UserSnapshot) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName returns the name, falling back to the email and then "User".
func (u *UserSnapshot) DisplayName() string {
	if u == nil {
		return "User"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "User"
}

func (u *UserSnapshot) valid() bool {
	return u != nil && (u.ID != "" || u.Role != "")
}

// normalizeUser converts any user shape the backend emits into a snapshot.
// Accepted shapes: {id,name,email,role}, {user:{...}}, {data:{user:{...}}} and
// the Mongo-style _id key. The result has a lower-case role.
func normalizeUser(raw any) (*UserSnapshot, error) {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, fmt.Errorf("user payload is not an object")
	}
	for depth := 0; depth < 3; depth++ {
		if nested, ok := obj["user"].(map[string]any); ok {
			obj = nested
			continue
		}
		if _, hasRole := obj["role"]; !hasRole {
			if nested, ok := obj["data"].(map[string]any); ok {
				obj = nested
				continue
			}
		}
		break
	}

	fields := make(map[string]any, len(obj))
	for k, v := range obj {
		fields[k] = v
	}
	if _, ok := fields["id"]; !ok {
		if alt, ok := fields["_id"]; ok {
			fields["id"] = alt
		}
	}

	var user UserSnapshot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &user,
	})
	if err != nil {
		return nil, fmt.Errorf("build user decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user.Role = NormalizeRole(user.Role)
	user.Email = strings.TrimSpace(user.Email)
	if !user.valid() {
		return nil, fmt.Errorf("user payload has neither id nor role")
	}
	return &user, nil
}

// parseStoredUser decodes the persisted snapshot. Older clients stored the
// raw login payload, so the stored JSON is passed through normalizeUser.
func parseStoredUser(data string) (*UserSnapshot, error) {
	var raw any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("stored user is not valid JSON: %w", err)
	}
	return normalizeUser(raw)
}

func encodeUser(u *UserSnapshot) (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	return string(data), nil
}
