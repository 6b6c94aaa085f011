package easyvalidate

import (
	"go.uber.org/multierr"
)

///////////////////////////////////////////////////////////////////////////////
// Signatures
///////////////////////////////////////////////////////////////////////////////

// Param declares one parameter of a wrapped function: its name and,
// optionally, its type hint. A nil hint means the parameter is unannotated.
type Param struct {
	Name string
	Hint *TypeHint
}

// P is shorthand for building a Param.
func P(name string, hint *TypeHint) Param {
	return Param{Name: name, Hint: hint}
}

// Signature is the declared parameter list of a function. Go functions
// carry no parameter names at runtime, so the caller supplies them here,
// once, when a wrapper is built.
type Signature struct {
	params []Param
}

// NewSignature builds a signature from an ordered parameter list. Empty and
// duplicate names are construction errors; all offending parameters are
// reported together.
func NewSignature(params ...Param) (*Signature, error) {
	var errs error
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			errs = multierr.Append(errs, constructionErr(ErrEmptyParamName, "parameter name cannot be empty"))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			errs = multierr.Append(errs, constructionErr(ErrDuplicateParam, "duplicate parameter %q", p.Name))
			continue
		}
		seen[p.Name] = struct{}{}
	}
	if errs != nil {
		return nil, errs
	}

	owned := make([]Param, len(params))
	copy(owned, params)
	return &Signature{params: owned}, nil
}

// Len returns the number of declared parameters.
func (s *Signature) Len() int {
	return len(s.params)
}

// Names returns the declared parameter names in order.
func (s *Signature) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// Index returns the position of a named parameter, or -1.
func (s *Signature) Index(name string) int {
	for i, p := range s.params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Params returns a copy of the declared parameters.
func (s *Signature) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Bind resolves the arguments of one call to parameter names: positional
// arguments zip against the declared names by index, then keyword arguments
// merge in. Bind does not re-validate arity or keyword/positional
// collisions; respecting the calling convention is the caller's own
// responsibility.
func (s *Signature) Bind(positional []any, keyword map[string]any) map[string]any {
	bound := make(map[string]any, len(s.params))
	for i, arg := range positional {
		if i >= len(s.params) {
			break
		}
		bound[s.params[i].Name] = arg
	}
	for name, arg := range keyword {
		bound[name] = arg
	}
	return bound
}

// isMethod reports whether the signature looks like a bound method: a first
// parameter named "self" or "cls", which is then excluded from validation.
func (s *Signature) isMethod() bool {
	if len(s.params) == 0 {
		return false
	}
	first := s.params[0].Name
	return first == "self" || first == "cls"
}
