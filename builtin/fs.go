package builtin

import (
	"os"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/effect"
	"github.com/leadotlang/lea/value"
)

// fsBuiltins grounds on the teacher's std/file_io.go, marking every call
// through package effect so #pure can detect the side effect.
func fsBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("readFile", 1, 1, func(args []value.Value) (value.Value, error) {
			path, err := asString("readFile", args[0])
			if err != nil {
				return nil, err
			}
			effect.Mark()
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "readFile: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: string(data)}, nil
		}),

		bi("writeFile", 2, 2, func(args []value.Value) (value.Value, error) {
			path, err := asString("writeFile", args[0])
			if err != nil {
				return nil, err
			}
			content, err := asString("writeFile", args[1])
			if err != nil {
				return nil, err
			}
			effect.Mark()
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "writeFile: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return value.TheNull, nil
		}),

		bi("fileExists", 1, 1, func(args []value.Value) (value.Value, error) {
			path, err := asString("fileExists", args[0])
			if err != nil {
				return nil, err
			}
			effect.Mark()
			_, statErr := os.Stat(path)
			return &value.Bool{Value: statErr == nil}, nil
		}),
	}
}
