package dsl

import (
	"time"

	datacls "github.com/reoring/datacls"
)

// String returns the type hint for string fields.
func String() datacls.TypeHint { return datacls.HintOf[string]() }

// Int returns the type hint for int fields.
func Int() datacls.TypeHint { return datacls.HintOf[int]() }

// Float returns the type hint for float64 fields.
func Float() datacls.TypeHint { return datacls.HintOf[float64]() }

// Bool returns the type hint for bool fields.
func Bool() datacls.TypeHint { return datacls.HintOf[bool]() }

// Time returns the type hint for time.Time fields.
func Time() datacls.TypeHint { return datacls.HintOf[time.Time]() }

// Any returns the type hint for fields of any type.
func Any() datacls.TypeHint { return datacls.HintOf[any]() }

// Of returns the type hint for Go type T.
func Of[T any]() datacls.TypeHint { return datacls.HintOf[T]() }

// Named returns a hint that is only a name, e.g. a type defined elsewhere.
func Named(name string) datacls.TypeHint { return datacls.Hint(name) }
