package tools

import (
	"context"
	"sort"

	"github.com/effective-security/finmcp/utils"
)

// ITool is a tool for the agent to interact with the fintech services.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	Description() string
	// Parameters returns the JSON schema of the tool input.
	Parameters() any

	// Call executes the tool with the given input and returns the result.
	// If the tool fails to parse the input, it should return an error
	// wrapping ErrFailedUnmarshalInput.
	Call(context.Context, string) (string, error)
}

// Callback receives the tool lifecycle notifications of the Registry.
type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
	OnToolNotFound(context.Context, string)
}

// Tool is a tool with typed input and output.
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// InputParser is implemented by tool inputs that accept a bare string
// argument in place of a JSON object.
type InputParser interface {
	ParseInput(string) error
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions returns the names and descriptions of the tools,
// sorted by name, as a JSON code block.
func GetDescriptions(list ...ITool) string {
	return utils.BackticksJSON(utils.ToJSONIndent(describe(list)))
}

// GetDescriptionsYAML returns the names and descriptions of the tools,
// sorted by name, as YAML.
func GetDescriptionsYAML(list ...ITool) string {
	return utils.ToYAML(describe(list))
}

func describe(list []ITool) toolsDescription {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	sort.Slice(d.Tools, func(i, j int) bool {
		return d.Tools[i].Name < d.Tools[j].Name
	})
	return d
}
