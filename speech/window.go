// SPDX-License-Identifier: EPL-2.0

package speech

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"gonum.org/v1/gonum/dsp/window"
)

// WindowType names a window function in the registry.
type WindowType string

// Built-in window types.
const (
	Hamming     WindowType = "hamming"
	Hann        WindowType = "hann"
	Blackman    WindowType = "blackman"
	Bartlett    WindowType = "bartlett"
	Rectangular WindowType = "rectangular"

	Sine           WindowType = "sine"
	BlackmanHarris WindowType = "blackman-harris"
	Nuttall        WindowType = "nuttall"
)

// WindowFunc generates the n coefficients of a symmetric window.
// It is only called with n >= 2; shorter windows are handled by the caller.
type WindowFunc func(n int) []float64

var windows = struct {
	mtx   sync.RWMutex
	funcs map[WindowType]WindowFunc
}{
	funcs: map[WindowType]WindowFunc{
		Hamming:        hamming,
		Hann:           fromGonum(window.Hann),
		Blackman:       fromGonum(window.Blackman),
		Bartlett:       fromGonum(window.Triangular),
		Rectangular:    fromGonum(window.Rectangular),
		Sine:           fromGonum(window.Sine),
		BlackmanHarris: fromGonum(window.BlackmanHarris),
		Nuttall:        fromGonum(window.Nuttall),
	},
}

// windowAliases maps alternative spellings accepted by ParseWindowType.
var windowAliases = map[string]WindowType{
	"hanning":    Hann,
	"rect":       Rectangular,
	"boxcar":     Rectangular,
	"triangular": Bartlett,
}

// RegisterWindow adds fn under t, replacing any window already registered
// with that name.
func RegisterWindow(t WindowType, fn WindowFunc) error {
	if t == "" {
		return fmt.Errorf("empty window type: %w", ErrInvalidArgument)
	}

	if fn == nil {
		return fmt.Errorf("nil window func for %q: %w", t, ErrInvalidArgument)
	}

	windows.mtx.Lock()
	defer windows.mtx.Unlock()

	windows.funcs[t] = fn

	return nil
}

// LookupWindow returns the generator registered under t.
func LookupWindow(t WindowType) (WindowFunc, bool) {
	windows.mtx.RLock()
	defer windows.mtx.RUnlock()

	fn, ok := windows.funcs[t]
	return fn, ok
}

// WindowTypes lists the registered window types in sorted order.
func WindowTypes() []WindowType {
	windows.mtx.RLock()
	defer windows.mtx.RUnlock()

	types := make([]WindowType, 0, len(windows.funcs))
	for t := range windows.funcs {
		types = append(types, t)
	}
	slices.Sort(types)

	return types
}

// ParseWindowType normalizes s and checks it against the registry.
func ParseWindowType(s string) (WindowType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := windowAliases[name]; ok {
		return alias, nil
	}

	t := WindowType(name)
	if _, ok := LookupWindow(t); !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedWindowType)
	}

	return t, nil
}

// WindowCoefficients returns the n coefficients of window t.
// A single-sample window is always [1].
func WindowCoefficients(n int, t WindowType) ([]float64, error) {
	fn, ok := LookupWindow(t)
	if !ok {
		return nil, fmt.Errorf("%q: %w", t, ErrUnsupportedWindowType)
	}

	if n < 0 {
		return nil, fmt.Errorf("window length %d: %w", n, ErrInvalidArgument)
	}

	switch n {
	case 0:
		return []float64{}, nil
	case 1:
		return []float64{1}, nil
	}

	coefs := fn(n)
	if len(coefs) != n {
		return nil, fmt.Errorf("window %q returned %d coefficients, want %d: %w",
			t, len(coefs), n, ErrInvalidArgument)
	}

	return coefs, nil
}

// ApplyWindow returns frame multiplied sample by sample with window t.
// frame itself is not modified.
func ApplyWindow(frame []float64, t WindowType) ([]float64, error) {
	coefs, err := WindowCoefficients(len(frame), t)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(frame))
	for i, x := range frame {
		out[i] = x * coefs[i]
	}

	return out, nil
}

// hamming keeps the classic 0.54/0.46 coefficients. gonum's Hamming uses
// 25/46 and 21/46, which moves the endpoints away from 0.08.
func hamming(n int) []float64 {
	coefs := make([]float64, n)
	step := 2 * math.Pi / float64(n-1)

	for i := range n {
		coefs[i] = 0.54 - 0.46*math.Cos(step*float64(i))
	}

	return coefs
}

// fromGonum adapts an in-place gonum window to a WindowFunc.
func fromGonum(apply func(seq []float64) []float64) WindowFunc {
	return func(n int) []float64 {
		seq := make([]float64, n)
		for i := range seq {
			seq[i] = 1
		}

		return apply(seq)
	}
}
