package domain

import (
	"fmt"
	"time"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Valid reports whether s is one of the three defined severity levels.
func (s Severity) Valid() bool {
	return s >= SeverityInfo && s <= SeverityError
}

// Issue is a single control-check finding. Issues are created once by a check,
// registered in detection order and never mutated afterwards.
type Issue struct {
	CheckName  string
	Severity   Severity
	Message    string
	EntityType string
	EntityID   int64 // 0 when the check has no concrete record to point at
	EntityName string
	Details    map[string]any
	DetectedAt time.Time
}

// NewIssue builds an Issue with a fresh Details map. It panics on an undefined
// severity: that is a bug in the calling check, not a data problem.
func NewIssue(checkName string, severity Severity, message string) Issue {
	if !severity.Valid() {
		panic(fmt.Sprintf("issue %q constructed with invalid severity %d", checkName, int(severity)))
	}
	return Issue{
		CheckName:  checkName,
		Severity:   severity,
		Message:    message,
		Details:    map[string]any{},
		DetectedAt: time.Now(),
	}
}

// HasEntity reports whether the issue references a concrete ledger record.
func (i Issue) HasEntity() bool {
	return i.EntityType != "" && i.EntityID != 0
}
