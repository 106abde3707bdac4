package builtin

import (
	"math"

	"github.com/leadotlang/lea/value"
)

// arithBuiltins grounds on the teacher's std/math.go registration shape,
// adapted to Lea's tagged Int/Float values with automatic promotion.
func arithBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("abs", 1, 1, func(args []value.Value) (value.Value, error) {
			f, err := asFloat("abs", args[0])
			if err != nil {
				return nil, err
			}
			return numberValue(math.Abs(f)), nil
		}),
		bi("min", 1, -1, func(args []value.Value) (value.Value, error) {
			best, err := asFloat("min", args[0])
			if err != nil {
				return nil, err
			}
			for _, a := range args[1:] {
				f, err := asFloat("min", a)
				if err != nil {
					return nil, err
				}
				if f < best {
					best = f
				}
			}
			return numberValue(best), nil
		}),
		bi("max", 1, -1, func(args []value.Value) (value.Value, error) {
			best, err := asFloat("max", args[0])
			if err != nil {
				return nil, err
			}
			for _, a := range args[1:] {
				f, err := asFloat("max", a)
				if err != nil {
					return nil, err
				}
				if f > best {
					best = f
				}
			}
			return numberValue(best), nil
		}),
		bi("floor", 1, 1, func(args []value.Value) (value.Value, error) {
			f, err := asFloat("floor", args[0])
			if err != nil {
				return nil, err
			}
			return &value.Int{Value: int64(math.Floor(f))}, nil
		}),
		bi("ceil", 1, 1, func(args []value.Value) (value.Value, error) {
			f, err := asFloat("ceil", args[0])
			if err != nil {
				return nil, err
			}
			return &value.Int{Value: int64(math.Ceil(f))}, nil
		}),
		bi("round", 1, 1, func(args []value.Value) (value.Value, error) {
			f, err := asFloat("round", args[0])
			if err != nil {
				return nil, err
			}
			return &value.Int{Value: int64(math.Round(f))}, nil
		}),
		bi("sqrt", 1, 1, func(args []value.Value) (value.Value, error) {
			f, err := asFloat("sqrt", args[0])
			if err != nil {
				return nil, err
			}
			return &value.Float{Value: math.Sqrt(f)}, nil
		}),
		bi("pow", 2, 2, func(args []value.Value) (value.Value, error) {
			base, err := asFloat("pow", args[0])
			if err != nil {
				return nil, err
			}
			exp, err := asFloat("pow", args[1])
			if err != nil {
				return nil, err
			}
			return numberValue(math.Pow(base, exp)), nil
		}),
		bi("clamp", 3, 3, func(args []value.Value) (value.Value, error) {
			v, err := asFloat("clamp", args[0])
			if err != nil {
				return nil, err
			}
			lo, err := asFloat("clamp", args[1])
			if err != nil {
				return nil, err
			}
			hi, err := asFloat("clamp", args[2])
			if err != nil {
				return nil, err
			}
			return numberValue(math.Min(math.Max(v, lo), hi)), nil
		}),
	}
}
