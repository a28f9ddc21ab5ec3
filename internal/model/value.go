package model

import (
	"github.com/spf13/cast"
)

// AbsentText is how an absent value renders in report text.
const AbsentText = "N/A"

// Value is one plucked field. A missing key and a JSON null are both absent;
// zero, false and "" are present.
type Value struct {
	v       any
	present bool
}

// Present wraps v as a present value. A nil v is still absent.
func Present(v any) Value {
	return Value{v: v, present: v != nil}
}

// Absent returns the absent value.
func Absent() Value {
	return Value{}
}

func (v Value) Get() (any, bool) {
	return v.v, v.present
}

func (v Value) IsAbsent() bool {
	return !v.present
}

// Or renders the value, or fallback when it is absent.
func (v Value) Or(fallback string) string {
	if !v.present {
		return fallback
	}
	s, err := cast.ToStringE(v.v)
	if err != nil {
		return fallback
	}
	return s
}

func (v Value) String() string {
	return v.Or(AbsentText)
}
