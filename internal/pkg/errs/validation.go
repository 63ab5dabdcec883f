package errs

import "strings"

// FieldError ties a validation failure to the input field it was found on.
// Nested fields are addressed with dotted paths such as "items[1].quantity".
type FieldError struct {
	Field string
	Err   error
}

func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every violation found in a single input so the
// caller can report all of them at once instead of failing on the first.
type ValidationError struct {
	Fields []*FieldError
}

// Add records err under field. Joined errors, nested FieldErrors and nested
// ValidationErrors are flattened, with field used as a path prefix.
// A nil err is ignored.
func (v *ValidationError) Add(field string, err error) {
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *ValidationError:
		for _, fe := range e.Fields {
			v.Fields = append(v.Fields, &FieldError{Field: joinPath(field, fe.Field), Err: fe.Err})
		}
		return
	case *FieldError:
		v.Fields = append(v.Fields, &FieldError{Field: joinPath(field, e.Field), Err: e.Err})
		return
	case *StatusTransitionError:
		// kept whole: its Unwrap lists a cause, not sibling violations
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			v.Add(field, inner)
		}
		return
	}

	v.Fields = append(v.Fields, &FieldError{Field: field, Err: err})
}

// AddIfAbsent is Add, except that violations on fields already reported are
// dropped. It keeps a more specific error, such as a missing reference, from
// being repeated by a later generic check of the same field.
func (v *ValidationError) AddIfAbsent(field string, err error) {
	var tmp ValidationError
	tmp.Add(field, err)
	for _, fe := range tmp.Fields {
		if !v.Has(fe.Field) {
			v.Fields = append(v.Fields, fe)
		}
	}
}

// Has reports whether a violation was recorded for field.
func (v *ValidationError) Has(field string) bool {
	for _, fe := range v.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// ErrOrNil returns v when at least one violation was recorded.
func (v *ValidationError) ErrOrNil() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, fe := range v.Fields {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(v.Fields))
	for _, fe := range v.Fields {
		out = append(out, fe)
	}
	return out
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	case strings.HasPrefix(field, "["):
		return prefix + field
	default:
		return prefix + "." + field
	}
}
