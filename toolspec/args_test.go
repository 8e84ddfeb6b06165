package toolspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func convertSchema(t *testing.T) *Schema {
	input, err := ParsePositional("input Input file")
	assert.Nil(t, err)
	output, err := ParsePositional("output Output file")
	assert.Nil(t, err)
	resize, err := ParseFlag("-resize= Resize dimensions")
	assert.Nil(t, err)
	verbose, err := ParseFlag("-verbose Verbose output")
	assert.Nil(t, err)
	aSchema, err := New("convert", "Convert an image", []*Parameter{input, output, resize, verbose})
	assert.Nil(t, err)
	return aSchema
}

func TestSchema_BuildArgs(t *testing.T) {
	aSchema := convertSchema(t)

	testCases := []struct {
		description string
		arguments   map[string]interface{}
		expect      []string
	}{
		{
			description: "positionals and value flag",
			arguments:   map[string]interface{}{"input": "a.png", "output": "b.png", "resize": "50%"},
			expect:      []string{"a.png", "b.png", "-resize=50%"},
		},
		{
			description: "positionals only",
			arguments:   map[string]interface{}{"input": "a.png", "output": "b.png"},
			expect:      []string{"a.png", "b.png"},
		},
		{
			description: "boolean flag on",
			arguments:   map[string]interface{}{"input": "a.png", "output": "b.png", "verbose": true},
			expect:      []string{"a.png", "b.png", "-verbose"},
		},
		{
			description: "boolean flag off",
			arguments:   map[string]interface{}{"input": "a.png", "output": "b.png", "verbose": false},
			expect:      []string{"a.png", "b.png"},
		},
		{
			description: "all parameters",
			arguments:   map[string]interface{}{"input": "a.png", "output": "b.png", "resize": "50%", "verbose": true},
			expect:      []string{"a.png", "b.png", "-resize=50%", "-verbose"},
		},
		{
			description: "numeric value",
			arguments:   map[string]interface{}{"input": "a.png", "output": "b.png", "resize": float64(50)},
			expect:      []string{"a.png", "b.png", "-resize=50"},
		},
		{
			description: "argument with spaces stays one token",
			arguments:   map[string]interface{}{"input": "my file.png", "output": "b; rm -rf.png"},
			expect:      []string{"my file.png", "b; rm -rf.png"},
		},
	}

	for _, testCase := range testCases {
		actual, err := aSchema.BuildArgs(testCase.arguments)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestSchema_BuildArgsMissing(t *testing.T) {
	aSchema := convertSchema(t)

	_, err := aSchema.BuildArgs(map[string]interface{}{"input": "a.png"})
	assert.NotNil(t, err)
	var missing *MissingArgumentError
	if assert.ErrorAs(t, err, &missing) {
		assert.Equal(t, "output", missing.Name)
	}

	_, err = aSchema.BuildArgs(map[string]interface{}{"input": "a.png", "output": nil})
	assert.NotNil(t, err)
	assert.ErrorAs(t, err, &missing)
}

func TestSchema_BuildArgsUnknown(t *testing.T) {
	aSchema := convertSchema(t)

	_, err := aSchema.BuildArgs(map[string]interface{}{"input": "a.png", "output": "b.png", "rotate": "90"})
	assert.NotNil(t, err)
	var unknown *UnknownArgumentError
	if assert.ErrorAs(t, err, &unknown) {
		assert.Equal(t, "rotate", unknown.Name)
	}
}

func TestSchema_BuildArgsNoParameters(t *testing.T) {
	aSchema, err := New("date", "Print the current date", nil)
	assert.Nil(t, err)
	args, err := aSchema.BuildArgs(map[string]interface{}{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(args))
}
