package toolspec

import (
	"fmt"
	"sort"
	"strconv"
)

// MissingArgumentError indicates a required argument was absent from a call.
type MissingArgumentError struct {
	Name string
}

// Error returns the error message.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument: %v", e.Name)
}

// UnknownArgumentError indicates an argument that is not part of the tool schema.
type UnknownArgumentError struct {
	Name string
}

// Error returns the error message.
func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument: %v", e.Name)
}

// BuildArgs maps structured call arguments onto a command argument vector.
// Positionals come first in declared order, followed by flags in declared
// order. Argument values are passed through as data, never re-tokenized.
// A JSON null value counts as absent.
func (s *Schema) BuildArgs(arguments map[string]interface{}) ([]string, error) {
	for _, parameter := range s.Parameters {
		if !parameter.Required {
			continue
		}
		if value, ok := arguments[parameter.Name]; !ok || value == nil {
			return nil, &MissingArgumentError{Name: parameter.Name}
		}
	}
	names := make([]string, 0, len(arguments))
	for name := range arguments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if s.Parameter(name) == nil {
			return nil, &UnknownArgumentError{Name: name}
		}
	}
	var args []string
	for _, parameter := range s.Parameters {
		if parameter.Kind != Positional {
			continue
		}
		args = append(args, formatValue(arguments[parameter.Name]))
	}
	for _, parameter := range s.Parameters {
		value, ok := arguments[parameter.Name]
		if !ok || value == nil {
			continue
		}
		switch parameter.Kind {
		case ValueFlag:
			args = append(args, parameter.Token+"="+formatValue(value))
		case BooleanFlag:
			if isTruthy(value) {
				args = append(args, parameter.Token)
			}
		}
	}
	return args, nil
}

// formatValue renders a JSON argument value as a command line string.
func formatValue(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return actual
	case bool:
		return strconv.FormatBool(actual)
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", actual)
	}
}

// isTruthy reports whether a boolean flag value switches the flag on.
func isTruthy(value interface{}) bool {
	switch actual := value.(type) {
	case bool:
		return actual
	case string:
		parsed, err := strconv.ParseBool(actual)
		return err == nil && parsed
	case float64:
		return actual != 0
	default:
		return false
	}
}
