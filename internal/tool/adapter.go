package tool

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Tool is one executable capability offered to the model.
type Tool interface {
	ID() ID
	Declaration() Declaration
	// Execute runs the tool. The returned text is sent back to the model;
	// an error is converted to text by the caller.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Validator is implemented by request types that check themselves after
// decoding.
type Validator interface {
	Validate() error
}

// Func executes a tool with a typed request.
type Func[Req any] func(ctx context.Context, req Req) (string, error)

// Adapter turns a typed Func into a Tool. Arguments are decoded over a
// copy of the defaults, so absent optional parameters keep their default.
type Adapter[Req any] struct {
	id       ID
	decl     Declaration
	defaults Req
	run      Func[Req]
}

// Adapt builds a Tool around run.
func Adapt[Req any](id ID, description string, params *Schema, defaults Req, run Func[Req]) *Adapter[Req] {
	if !id.Valid() {
		panic(fmt.Sprintf("tool %q is not in the catalog", id))
	}
	if run == nil {
		panic("run is required")
	}
	if params == nil {
		params = Object(nil)
	}
	return &Adapter[Req]{
		id: id,
		decl: Declaration{
			Name:        string(id),
			Description: description,
			Parameters:  params,
		},
		defaults: defaults,
		run:      run,
	}
}

func (a *Adapter[Req]) ID() ID {
	return a.id
}

func (a *Adapter[Req]) Declaration() Declaration {
	return a.decl
}

// Execute decodes args with mapstructure (weakly typed, so "10" fills an
// int and "true" a bool), checks required fields and runs the tool.
func (a *Adapter[Req]) Execute(ctx context.Context, args map[string]any) (string, error) {
	req := a.defaults

	// Parameter-less tools ignore whatever the model sent.
	if len(a.decl.Parameters.Properties) > 0 {
		for _, field := range a.decl.Parameters.Required {
			if isMissing(args[field]) {
				return "", &MissingFieldError{Tool: a.id, Field: field}
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &req,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return "", fmt.Errorf("build decoder: %w", err)
		}
		if err := decoder.Decode(args); err != nil {
			return "", &InvalidArgumentsError{Tool: a.id, Cause: err}
		}
	}

	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", err
		}
	}

	return a.run(ctx, req)
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
