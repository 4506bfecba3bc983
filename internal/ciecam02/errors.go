package ciecam02

import (
	"fmt"
	"math"
)

// ComputationError reports viewing-condition inputs that leave the derived
// ratios undefined, such as a non-positive luminance.
type ComputationError struct {
	Op  string
	Msg string
	Err error
}

func (e *ComputationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// TransformError reports a forward or inverse CIECAM02 transform that
// produced a non-finite or otherwise invalid intermediate value.
type TransformError struct {
	Op    string
	Stage string
	Msg   string
	Err   error
}

func (e *TransformError) Error() string {
	s := fmt.Sprintf("ciecam02 %s: %s: %s", e.Op, e.Stage, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *TransformError) Unwrap() error { return e.Err }

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
