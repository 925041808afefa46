package query

import "fmt"

// InvalidArityError reports a query constructor called outside its declared
// argument-count bounds. Max < 0 means unbounded.
type InvalidArityError struct {
	Name string
	Min  int
	Max  int
	Got  int
}

func (e InvalidArityError) Error() string {
	switch {
	case e.Max < 0:
		return fmt.Sprintf("%s expects at least %d arguments, got %d", e.Name, e.Min, e.Got)
	case e.Min == e.Max:
		return fmt.Sprintf("%s expects exactly %d arguments, got %d", e.Name, e.Min, e.Got)
	default:
		return fmt.Sprintf("%s expects between %d and %d arguments, got %d", e.Name, e.Min, e.Max, e.Got)
	}
}

func checkArity(name string, min, max, got int) error {
	if got < min || (max >= 0 && got > max) {
		return InvalidArityError{Name: name, Min: min, Max: max, Got: got}
	}
	return nil
}

// varargs wraps the arguments of a variadic function form: a single argument
// stays bare, several become a sequence. The wire format accepts both.
func varargs(name string, min int, args []interface{}) Expr {
	if err := checkArity(name, min, -1, len(args)); err != nil {
		return invalidExpr{err: err}
	}
	if len(args) == 1 {
		return Wrap(args[0])
	}
	elems := make([]Expr, len(args))
	for i, a := range args {
		elems[i] = Wrap(a)
	}
	return arrayExpr{elems: elems}
}
