package toolspec

import (
	"fmt"

	"github.com/viant/mcp-protocol/schema"
)

// Schema describes the single tool exposed by the bridge.
type Schema struct {
	Name        string
	Description string
	Parameters  []*Parameter
	index       map[string]*Parameter
}

// New creates a tool schema, validating parameter name uniqueness.
func New(name, description string, parameters []*Parameter) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name was empty")
	}
	if description == "" {
		return nil, fmt.Errorf("tool description was empty")
	}
	index := make(map[string]*Parameter, len(parameters))
	for _, parameter := range parameters {
		if _, ok := index[parameter.Name]; ok {
			return nil, &ParseError{Spec: parameter.Name, Reason: "duplicate parameter name"}
		}
		index[parameter.Name] = parameter
	}
	return &Schema{Name: name, Description: description, Parameters: parameters, index: index}, nil
}

// Parameter returns the parameter declared under the supplied name, or nil.
func (s *Schema) Parameter(name string) *Parameter {
	return s.index[name]
}

// Tool projects the schema into an MCP tool declaration. Every parameter
// becomes a string property except boolean flags; the required list holds
// positional names in declared order.
func (s *Schema) Tool() schema.Tool {
	properties := schema.ToolInputSchemaProperties{}
	var required []string
	for _, parameter := range s.Parameters {
		propertyType := "string"
		if parameter.Kind == BooleanFlag {
			propertyType = "boolean"
		}
		properties[parameter.Name] = map[string]interface{}{
			"type":        propertyType,
			"description": parameter.Description,
		}
		if parameter.Required {
			required = append(required, parameter.Name)
		}
	}
	description := s.Description
	return schema.Tool{
		Name:        s.Name,
		Description: &description,
		InputSchema: schema.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}
