package builtin

import (
	"encoding/json"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/value"
)

// jsonBuiltins grounds on the teacher's std/json.go (which shells out to
// encoding/json over GoMixObject trees); Lea's version walks value.Value
// trees the same way.
func jsonBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("toJson", 1, 1, func(args []value.Value) (value.Value, error) {
			data, err := toJSONAny(args[0])
			if err != nil {
				return nil, err
			}
			raw, err := json.Marshal(data)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "toJson: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: string(raw)}, nil
		}),

		bi("parseJson", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("parseJson", args[0])
			if err != nil {
				return nil, err
			}
			var data interface{}
			if err := json.Unmarshal([]byte(s), &data); err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "parseJson: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return fromJSONAny(data), nil
		}),
	}
}

func toJSONAny(v value.Value) (interface{}, error) {
	switch t := v.(type) {
	case *value.Int:
		return t.Value, nil
	case *value.Float:
		return t.Value, nil
	case *value.String:
		return t.Value, nil
	case *value.Bool:
		return t.Value, nil
	case *value.Null:
		return nil, nil
	case *value.List:
		out := make([]interface{}, len(t.Elements))
		for i, el := range t.Elements {
			jv, err := toJSONAny(el)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil
	case *value.Record:
		out := make(map[string]interface{}, len(t.Keys))
		for _, k := range t.Keys {
			el, _ := t.Get(k)
			jv, err := toJSONAny(el)
			if err != nil {
				return nil, err
			}
			out[k] = jv
		}
		return out, nil
	}
	return nil, typeErr("toJson", "a JSON-representable value", v)
}

func fromJSONAny(data interface{}) value.Value {
	switch t := data.(type) {
	case nil:
		return value.TheNull
	case bool:
		return &value.Bool{Value: t}
	case float64:
		return numberValue(t)
	case string:
		return &value.String{Value: t}
	case []interface{}:
		elems := make([]value.Value, len(t))
		for i, el := range t {
			elems[i] = fromJSONAny(el)
		}
		return &value.List{Elements: elems}
	case map[string]interface{}:
		rec := value.NewRecord()
		for k, v := range t {
			rec.Set(k, fromJSONAny(v))
		}
		return rec
	}
	return value.TheNull
}
