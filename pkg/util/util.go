package util

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is reports whether target is the error code, so errors.Is matches both the
// wrapped cause and the code.
func (e *Error) Is(target error) bool {
	return e.code != nil && target == e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrBadParamInput       = errors.New("given Param is not valid")

	ErrTrackNotFound       = errors.New("track not found")
	ErrIndexNotBuilt       = errors.New("match index not built yet")
	ErrStaleIndexReference = errors.New("stale match index reference")
	ErrPersistence         = errors.New("match index persistence failure")
	ErrCorruptIndex        = errors.New("corrupt match index")
)

var MessageInternalServerError string = "internal server error"

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// UniqueSorted returns the distinct values of arr in ascending order. arr is not modified.
func UniqueSorted(arr []string) []string {
	copyArr := make([]string, len(arr))
	copy(copyArr, arr)
	sort.Strings(copyArr)

	out := copyArr[:0]
	for _, s := range copyArr {
		if len(out) > 0 && s == out[len(out)-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}

func StopConcurrentOperation(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
