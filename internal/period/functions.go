package period

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// All helper functions return seconds as a number so they compose with
// arithmetic: `seconds(1) + millis(500)`.
var evalContext = &hcl.EvalContext{
	Functions: map[string]function.Function{
		"seconds":  scaleFunc(1),
		"millis":   scaleFunc(0.001),
		"minutes":  scaleFunc(60),
		"duration": durationFunc,
		"min":      stdlib.MinFunc,
		"max":      stdlib.MaxFunc,
	},
}

func scaleFunc(factor float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "n", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return args[0].Multiply(cty.NumberFloatVal(factor)), nil
		},
	})
}

var durationFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "text", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		d, err := time.ParseDuration(args[0].AsString())
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		return cty.NumberFloatVal(d.Seconds()), nil
	},
})
