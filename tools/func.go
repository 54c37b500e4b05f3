package tools

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/pkg/schema"
	"github.com/effective-security/finmcp/utils"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report the JSON names of the fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// RunFunc is the handler of a typed tool
type RunFunc[I any, O any] func(context.Context, *I) (*O, error)

// Func is a tool with typed input and output backed by a handler.
type Func[I any, O any] struct {
	name        string
	description string
	schema      *schema.Schema
	run         RunFunc[I, O]
}

// ensure Func implements the Tool interface
var _ Tool[struct{}, struct{}] = (*Func[struct{}, struct{}])(nil)

// NewFunc returns the tool, the parameters schema is reflected from I
func NewFunc[I any, O any](name, description string, run RunFunc[I, O]) (*Func[I, O], error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("tool name is required")
	}
	if run == nil {
		return nil, errors.Errorf("tool %s: handler is required", name)
	}
	sc, err := schema.For[I]()
	if err != nil {
		return nil, errors.Wrapf(err, "tool %s: failed to create schema", name)
	}
	return &Func[I, O]{
		name:        name,
		description: description,
		schema:      sc,
		run:         run,
	}, nil
}

func (f *Func[I, O]) Name() string {
	return f.name
}

func (f *Func[I, O]) Description() string {
	return f.description
}

func (f *Func[I, O]) Parameters() any {
	return f.schema.Parameters
}

// Schema returns the JSON schema of the input
func (f *Func[I, O]) Schema() json.RawMessage {
	return f.schema.JSON()
}

func (f *Func[I, O]) Run(ctx context.Context, in *I) (*O, error) {
	if err := f.validate(in); err != nil {
		return nil, err
	}
	return f.run(ctx, in)
}

// Parse decodes the arguments. When I implements InputParser the arguments
// are a JSON object, a JSON string or any other text taken verbatim. Otherwise
// they are a JSON object, optionally surrounded by text.
func (f *Func[I, O]) Parse(input string) (*I, error) {
	in := new(I)
	text := strings.TrimSpace(input)

	parser, ok := any(in).(InputParser)
	if !ok {
		cleaned := utils.CleanJSON([]byte(text))
		if len(cleaned) == 0 || cleaned[0] != '{' {
			return nil, &ArgumentError{Tool: f.name, Reason: "expected JSON object", Err: ErrFailedUnmarshalInput}
		}
		if err := json.Unmarshal(cleaned, in); err != nil {
			return nil, &ArgumentError{Tool: f.name, Reason: "malformed JSON object", Err: ErrFailedUnmarshalInput}
		}
		return in, nil
	}

	// free text may contain braces, only a complete object is decoded
	if utils.IsJSONObject(text) && json.Valid([]byte(text)) {
		if err := json.Unmarshal([]byte(text), in); err != nil {
			return nil, &ArgumentError{Tool: f.name, Reason: "malformed JSON object", Err: ErrFailedUnmarshalInput}
		}
		return in, nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if json.Unmarshal([]byte(text), &s) == nil {
			text = s
		}
	}
	if err := parser.ParseInput(text); err != nil {
		return nil, &ArgumentError{Tool: f.name, Reason: err.Error(), Err: ErrFailedUnmarshalInput}
	}
	return in, nil
}

func (f *Func[I, O]) validate(in *I) error {
	if in == nil {
		return &ArgumentError{Tool: f.name, Reason: "input is required", Err: ErrFailedUnmarshalInput}
	}
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ArgumentError{Tool: f.name, Field: verrs[0].Field(), Reason: "failed on '" + verrs[0].Tag() + "' rule", Err: ErrFailedUnmarshalInput}
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		// I is not a struct, nothing to validate
		return nil
	}
	return &ArgumentError{Tool: f.name, Reason: err.Error(), Err: ErrFailedUnmarshalInput}
}

// CallRaw executes the tool and returns the JSON encoding of the output.
func (f *Func[I, O]) CallRaw(ctx context.Context, input string) (json.RawMessage, error) {
	in, err := f.Parse(input)
	if err != nil {
		return nil, err
	}
	out, err := f.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if raw, ok := any(out).(*json.RawMessage); ok && raw != nil {
		return *raw, nil
	}
	js, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrapf(err, "tool %s: failed to marshal output", f.name)
	}
	return js, nil
}

// Call executes the tool, text outputs are returned as is,
// others as JSON.
func (f *Func[I, O]) Call(ctx context.Context, input string) (string, error) {
	raw, err := f.CallRaw(ctx, input)
	if err != nil {
		return "", err
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err = json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
	}
	return string(raw), nil
}
