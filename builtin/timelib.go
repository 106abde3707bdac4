package builtin

import (
	"time"

	"github.com/leadotlang/lea/value"
)

// timeBuiltins grounds on the teacher's std/time.go registration shape.
func timeBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("now", 0, 0, func(args []value.Value) (value.Value, error) {
			return &value.Int{Value: time.Now().UnixMilli()}, nil
		}),

		bi("today", 0, 0, func(args []value.Value) (value.Value, error) {
			return &value.String{Value: time.Now().Format("2006-01-02")}, nil
		}),

		bi("addDays", 2, 2, func(args []value.Value) (value.Value, error) {
			millis, err := asInt("addDays", args[0])
			if err != nil {
				return nil, err
			}
			days, err := asInt("addDays", args[1])
			if err != nil {
				return nil, err
			}
			t := time.UnixMilli(millis).AddDate(0, 0, int(days))
			return &value.Int{Value: t.UnixMilli()}, nil
		}),

		bi("diffDays", 2, 2, func(args []value.Value) (value.Value, error) {
			a, err := asInt("diffDays", args[0])
			if err != nil {
				return nil, err
			}
			b, err := asInt("diffDays", args[1])
			if err != nil {
				return nil, err
			}
			d := time.UnixMilli(a).Sub(time.UnixMilli(b))
			return &value.Int{Value: int64(d.Hours() / 24)}, nil
		}),
	}
}
