package interpolation

import (
	"errors"
	"fmt"

	"github.com/colinrgodsey/heatgrid/samples"
)

// ErrUnknownMethod is returned for interpolation method names that aren't supported.
var ErrUnknownMethod = errors.New("unknown interpolation method")

// Method names an interpolation strategy.
type Method string

const (
	MethodIDW         Method = "idw"
	MethodNearestIDW  Method = "idw-nearest"
	MethodMicroSphere Method = "microsphere"
)

func ParseMethod(name string) (Method, error) {
	switch m := Method(name); m {
	case MethodIDW, MethodNearestIDW, MethodMicroSphere:
		return m, nil
	case "":
		return MethodIDW, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMethod, name)
}

// New builds the interpolator for method. neighbors is only used by
// MethodNearestIDW.
func New(method Method, set samples.Set, power float64, neighbors int) (Interpolator2D, error) {
	switch method {
	case MethodIDW, "":
		return IDW(set, power), nil
	case MethodNearestIDW:
		return NearestIDW(set, power, neighbors), nil
	case MethodMicroSphere:
		return MicroSphere(set, power), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
}
