package auth

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// DefaultRoleKeys lists the profile keys that may carry the role, in lookup order.
// The backend has used every one of these at some point.
var DefaultRoleKeys = []string{"role", "user_role", "userRole", "Role", "type", "account_type"}

// AdminFlagKeys lists boolean profile keys that mark an administrator.
var AdminFlagKeys = []string{"isAdmin", "is_admin", "admin"}

// Profile is the denormalized snapshot of the authenticated principal.
// Raw keeps the backend object verbatim so it can be persisted without loss;
// the remaining fields are derived from Raw once by a Normalizer.
type Profile struct {
	Name  string
	Email string
	// Roles holds every role candidate found, lower-cased, in extractor order, without duplicates.
	Roles []string
	// AdminFlags holds the names of admin flag keys that were set to true.
	AdminFlags []string
	Raw        map[string]any
}

// Role returns the primary role (first candidate) or "" when none was found.
func (p Profile) Role() string {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[0]
}

// IsAdminFlagged reports whether any admin flag was set.
func (p Profile) IsAdminFlagged() bool { return len(p.AdminFlags) > 0 }

// MarshalJSON persists the raw backend object.
func (p Profile) MarshalJSON() ([]byte, error) {
	if p.Raw == nil {
		return json.Marshal(map[string]any{})
	}
	return json.Marshal(p.Raw)
}

// ParseRaw decodes a JSON object. Anything other than an object is an error.
func ParseRaw(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("profile is not a JSON object")
	}
	return raw, nil
}

// RoleExtractor pulls a role candidate out of a raw profile object.
type RoleExtractor interface {
	ExtractRole(raw map[string]any) (string, bool)
}

// RoleExtractorFunc adapts a function to RoleExtractor.
type RoleExtractorFunc func(raw map[string]any) (string, bool)

// ExtractRole implements RoleExtractor.
func (f RoleExtractorFunc) ExtractRole(raw map[string]any) (string, bool) { return f(raw) }

// KeyExtractor reads a top-level string field.
func KeyExtractor(key string) RoleExtractorFunc {
	return func(raw map[string]any) (string, bool) {
		return nonEmptyString(raw[key])
	}
}

// Normalizer derives the canonical Profile view from a raw backend object.
type Normalizer struct {
	extractors []RoleExtractor
}

// NewNormalizer returns a normalizer with the default key chain followed by extra extractors.
func NewNormalizer(extra ...RoleExtractor) *Normalizer {
	chain := make([]RoleExtractor, 0, len(DefaultRoleKeys)+len(extra))
	for _, key := range DefaultRoleKeys {
		chain = append(chain, KeyExtractor(key))
	}
	for _, e := range extra {
		if e != nil {
			chain = append(chain, e)
		}
	}
	return &Normalizer{extractors: chain}
}

// Normalize builds a Profile from raw. A nil raw yields an empty profile.
func (n *Normalizer) Normalize(raw map[string]any) Profile {
	if raw == nil {
		raw = map[string]any{}
	}
	p := Profile{
		Name:  profileName(raw),
		Email: stringField(raw, "email"),
		Raw:   raw,
	}

	for _, e := range n.extractors {
		role, ok := e.ExtractRole(raw)
		if !ok {
			continue
		}
		role = strings.ToLower(role)
		if !slices.Contains(p.Roles, role) {
			p.Roles = append(p.Roles, role)
		}
	}

	for _, key := range AdminFlagKeys {
		if truthy(raw[key]) {
			p.AdminFlags = append(p.AdminFlags, key)
		}
	}
	return p
}

func profileName(raw map[string]any) string {
	if name := stringField(raw, "name"); name != "" {
		return name
	}
	if name := stringField(raw, "full_name"); name != "" {
		return name
	}
	first, last := stringField(raw, "first_name"), stringField(raw, "last_name")
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}
	return stringField(raw, "username")
}

func stringField(raw map[string]any, key string) string {
	s, _ := nonEmptyString(raw[key])
	return s
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// truthy accepts JSON true and the string "true"; numbers and other strings are not flags.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}
