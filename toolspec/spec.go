package toolspec

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind discriminates how a parameter is rendered on the command line.
type Kind int

const (
	// Positional is a required argument emitted by position.
	Positional Kind = iota
	// ValueFlag is an optional flag emitted as a single token=value argument.
	ValueFlag
	// BooleanFlag is an optional flag emitted as a bare token when switched on.
	BooleanFlag
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case ValueFlag:
		return "value flag"
	case BooleanFlag:
		return "boolean flag"
	}
	return "unknown"
}

// Parameter describes a single argument of the wrapped command.
type Parameter struct {
	Name        string
	Description string
	Kind        Kind
	Token       string //literal flag spelling, i.e. -resize; empty for positionals
	Required    bool
}

// ParseError represents an invalid parameter spec.
type ParseError struct {
	Spec   string
	Reason string
}

// Error returns the error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid parameter spec %q: %v", e.Spec, e.Reason)
}

// ParsePositional parses a positional parameter spec in the form
// "name description". The name is the first whitespace-delimited field, the
// remainder is the description.
func ParsePositional(spec string) (*Parameter, error) {
	name, description, err := split(spec)
	if err != nil {
		return nil, err
	}
	return &Parameter{Name: name, Description: description, Kind: Positional, Required: true}, nil
}

// ParseFlag parses a flag parameter spec in the form "-token description" for
// a boolean flag, or "-token= description" for a flag that takes a value. The
// parameter name is the token with leading dashes removed.
func ParseFlag(spec string) (*Parameter, error) {
	token, description, err := split(spec)
	if err != nil {
		return nil, err
	}
	kind := BooleanFlag
	if strings.HasSuffix(token, "=") {
		kind = ValueFlag
		token = token[:len(token)-1]
	}
	if strings.Contains(token, "=") {
		return nil, &ParseError{Spec: spec, Reason: "'=' is only allowed at the end of a flag token"}
	}
	name := strings.TrimLeft(token, "-")
	if name == "" {
		return nil, &ParseError{Spec: spec, Reason: "empty flag name"}
	}
	return &Parameter{Name: name, Description: description, Kind: kind, Token: token}, nil
}

// split separates a spec into its first whitespace-delimited field and the
// trimmed remainder.
func split(spec string) (string, string, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return "", "", &ParseError{Spec: spec, Reason: "empty spec"}
	}
	index := strings.IndexFunc(trimmed, unicode.IsSpace)
	if index == -1 {
		return "", "", &ParseError{Spec: spec, Reason: "missing description"}
	}
	name := trimmed[:index]
	description := strings.TrimSpace(trimmed[index:])
	if description == "" {
		return "", "", &ParseError{Spec: spec, Reason: "missing description"}
	}
	return name, description, nil
}
