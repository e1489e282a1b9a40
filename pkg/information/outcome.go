package information

// Provenance records whether a composite field came from the catalog or is a default.
type Provenance string

// Provenance values.
const (
	Resolved  Provenance = "resolved"
	Defaulted Provenance = "defaulted"
)

// Outcome is the settled result of one pipeline: a value or the error that
// prevented it.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Succeeded wraps a resolved value.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Failed wraps a pipeline failure.
func Failed[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

// OK reports whether the pipeline resolved.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Or returns the value, or def when the pipeline failed.
func (o Outcome[T]) Or(def T) (T, Provenance) {
	if o.Err != nil {
		return def, Defaulted
	}
	return o.Value, Resolved
}
