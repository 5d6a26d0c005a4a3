// Package period evaluates schedule attribute expressions.
//
// A period is written either as a Go duration literal (`1.5s`, `250ms`) or
// as an HCL expression. Expressions may call seconds(n), millis(n),
// minutes(n), duration("1.5s") and the usual min/max; a bare number is read
// as seconds and a string as a Go duration.
package period

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrEmpty is returned for blank expressions.
var ErrEmpty = errors.New("expression is empty")

// Duration evaluates expr into a strictly positive duration.
func Duration(expr string) (time.Duration, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, ErrEmpty
	}

	d, err := time.ParseDuration(expr)
	if err != nil {
		val, evalErr := evaluate(expr)
		if evalErr != nil {
			return 0, evalErr
		}
		d, err = toDuration(val)
		if err != nil {
			return 0, err
		}
	}

	if d <= 0 {
		return 0, fmt.Errorf("period must be > 0, got %s", d)
	}
	return d, nil
}

// Count evaluates expr into a non-negative whole number.
func Count(expr string) (int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, ErrEmpty
	}
	val, err := evaluate(expr)
	if err != nil {
		return 0, err
	}
	if !val.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("expected a number, got %s", val.Type().FriendlyName())
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, fmt.Errorf("expected a whole number: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("count must be >= 0, got %d", n)
	}
	return n, nil
}

func evaluate(expr string) (cty.Value, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(expr), "<attribute>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("parse %q: %w", expr, diags)
	}
	val, diags := parsed.Value(evalContext)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluate %q: %w", expr, diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return cty.NilVal, fmt.Errorf("evaluate %q: value is null", expr)
	}
	return val, nil
}

func toDuration(val cty.Value) (time.Duration, error) {
	switch {
	case val.Type().Equals(cty.Number):
		var secs float64
		if err := gocty.FromCtyValue(val, &secs); err != nil {
			return 0, err
		}
		return fromSeconds(secs)
	case val.Type().Equals(cty.String):
		d, err := time.ParseDuration(val.AsString())
		if err != nil {
			return 0, err
		}
		return d, nil
	default:
		return 0, fmt.Errorf("expected a number of seconds or a duration string, got %s", val.Type().FriendlyName())
	}
}

func fromSeconds(secs float64) (time.Duration, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("invalid number of seconds %v", secs)
	}
	ns := math.Round(secs * float64(time.Second))
	if ns > math.MaxInt64 || ns < math.MinInt64 {
		return 0, fmt.Errorf("%v seconds overflows a duration", secs)
	}
	return time.Duration(ns), nil
}
