package query

import "fmt"

// Constant is a literal value in a predicate: either an int or a string.
// The union is closed; statistics dispatch on the variant to pick a
// histogram.
type Constant struct {
	intVal *int
	strVal *string
}

// NewIntConstant creates an integer constant.
func NewIntConstant(val int) Constant {
	return Constant{intVal: &val}
}

// NewStringConstant creates a string constant.
func NewStringConstant(val string) Constant {
	return Constant{strVal: &val}
}

// IsInt reports whether the constant holds an integer.
func (c Constant) IsInt() bool {
	return c.intVal != nil
}

// IsString reports whether the constant holds a string.
func (c Constant) IsString() bool {
	return c.strVal != nil
}

// AsInt returns the integer value. Call only when IsInt is true.
func (c Constant) AsInt() int {
	return *c.intVal
}

// AsString returns the string value. Call only when IsString is true.
func (c Constant) AsString() string {
	return *c.strVal
}

// Equals reports whether two constants hold the same variant and value.
func (c Constant) Equals(other Constant) bool {
	return c.CompareTo(other) == 0
}

// CompareTo returns -1, 0, or 1 as c is less than, equal to, or greater
// than other. Mismatched variants compare as -1.
func (c Constant) CompareTo(other Constant) int {
	switch {
	case c.intVal != nil && other.intVal != nil:
		switch {
		case *c.intVal < *other.intVal:
			return -1
		case *c.intVal > *other.intVal:
			return 1
		}
		return 0
	case c.strVal != nil && other.strVal != nil:
		switch {
		case *c.strVal < *other.strVal:
			return -1
		case *c.strVal > *other.strVal:
			return 1
		}
		return 0
	}
	return -1
}

func (c Constant) String() string {
	if c.intVal != nil {
		return fmt.Sprintf("%d", *c.intVal)
	}
	if c.strVal != nil {
		return *c.strVal
	}
	return "<nil>"
}
