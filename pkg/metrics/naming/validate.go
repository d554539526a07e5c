package naming

import (
	"fmt"
	"regexp"
)

var (
	labelPattern          = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._]*$`)
	scopeComponentPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// ValidateLabel returns an error if label cannot be used as metric name.
// Valid labels start with a letter followed by letters, digits, dots and
// underscores. The separators of the flattened name (`:`, `,`, `=`) are
// never allowed.
func ValidateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("label must not be empty")
	}
	if !labelPattern.MatchString(label) {
		return fmt.Errorf("label %q does not match %s", label, labelPattern)
	}
	return nil
}

func mustValidateLabel(label string) {
	if err := ValidateLabel(label); err != nil {
		panic(fmt.Sprintf("invalid metric label: %s", err))
	}
}

// ValidateScopeComponent returns an error if value cannot be used as
// keyspace or table name.
func ValidateScopeComponent(value string) error {
	if value == "" {
		return fmt.Errorf("must not be empty")
	}
	if !scopeComponentPattern.MatchString(value) {
		return fmt.Errorf("does not match %s", scopeComponentPattern)
	}
	return nil
}
