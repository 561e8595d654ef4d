// Package errlist implements a small aggregate error type used throughout
// binpack wherever a stage may encounter more than one recoverable error
// before reporting back to its caller (e.g. corpus runs that must not stop
// on the first bad file).
package errlist

// List is a slice of error that itself implements error.
type List []error

// Error implements the error interface.
func (l List) Error() string {
	return ToString([]error(l))
}

// String implements the stringer interface.
func (l List) String() string {
	return l.Error()
}

// New returns a List containing err, or nil if err is nil.
func New(err error) List {
	if err == nil {
		return nil
	}
	return List{err}
}

// Append appends err to l if it is not nil and returns the result.
func Append(l []error, err error) List {
	if err == nil {
		return l
	}
	return append(l, err)
}

// AppendList appends every non-nil error in other to l and returns the result.
func AppendList(l []error, other []error) List {
	if len(other) == 0 {
		return l
	}
	for _, e := range other {
		l = Append(l, e)
	}
	return l
}

// ToString renders errs as a comma-separated list, skipping nil entries.
func ToString(errs []error) string {
	var out string
	for i, e := range errs {
		if e == nil {
			continue
		}
		if i != 0 {
			out += ", "
		}
		out += e.Error()
	}
	return out
}
