package authroles

// Package authroles provides operator-configurable role extraction strategies.

import (
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
)

// JMESPathExtractor reads a role from the raw profile with a JMESPath expression,
// e.g. "user.role" or "roles[0]". A string result is a role; a list yields its first string.
type JMESPathExtractor struct {
	expr string
}

var _ domainauth.RoleExtractor = JMESPathExtractor{}

// NewJMESPathExtractor compiles expr to validate it up front.
func NewJMESPathExtractor(expr string) (JMESPathExtractor, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return JMESPathExtractor{}, fmt.Errorf("empty role expression")
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return JMESPathExtractor{}, fmt.Errorf("compile role expression %q: %w", expr, err)
	}
	return JMESPathExtractor{expr: expr}, nil
}

// Expression returns the source expression.
func (e JMESPathExtractor) Expression() string { return e.expr }

// ExtractRole implements domainauth.RoleExtractor.
func (e JMESPathExtractor) ExtractRole(raw map[string]any) (string, bool) {
	if e.expr == "" || raw == nil {
		return "", false
	}
	out, err := jmespath.Search(e.expr, raw)
	if err != nil {
		return "", false
	}
	switch v := out.(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	return "", false
}

// ParseExpressions builds extractors from a list of expressions, skipping blanks.
func ParseExpressions(exprs []string) ([]domainauth.RoleExtractor, error) {
	out := make([]domainauth.RoleExtractor, 0, len(exprs))
	for _, raw := range exprs {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		e, err := NewJMESPathExtractor(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
