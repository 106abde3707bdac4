package builtin

import "github.com/leadotlang/lea/value"

// recordBuiltins grounds on the teacher's std/map.go (Go-Mix's Map object
// exposes keys/values/entries-style methods), adapted to Lea's
// insertion-ordered *value.Record.
func recordBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("keys", 1, 1, func(args []value.Value) (value.Value, error) {
			rec, err := asRecord("keys", args[0])
			if err != nil {
				return nil, err
			}
			elems := make([]value.Value, len(rec.Keys))
			for i, k := range rec.Keys {
				elems[i] = &value.String{Value: k}
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("values", 1, 1, func(args []value.Value) (value.Value, error) {
			rec, err := asRecord("values", args[0])
			if err != nil {
				return nil, err
			}
			elems := make([]value.Value, len(rec.Keys))
			for i, k := range rec.Keys {
				elems[i], _ = rec.Get(k)
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("entries", 1, 1, func(args []value.Value) (value.Value, error) {
			rec, err := asRecord("entries", args[0])
			if err != nil {
				return nil, err
			}
			elems := make([]value.Value, len(rec.Keys))
			for i, k := range rec.Keys {
				v, _ := rec.Get(k)
				elems[i] = &value.List{Elements: []value.Value{&value.String{Value: k}, v}}
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("merge", 2, -1, func(args []value.Value) (value.Value, error) {
			out := value.NewRecord()
			for _, a := range args {
				rec, err := asRecord("merge", a)
				if err != nil {
					return nil, err
				}
				for _, k := range rec.Keys {
					v, _ := rec.Get(k)
					out.Set(k, v)
				}
			}
			return out, nil
		}),
	}
}
