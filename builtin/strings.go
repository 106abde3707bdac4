package builtin

import (
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/value"
)

// stringBuiltins grounds split/join/replace/trim/case conversions on the
// teacher's std/strings.go and the regex/base64/hex codecs on
// std/regex.go and std/crypto.go, adapted to return (value.Value, error)
// instead of GoMixObject-or-error-object.
func stringBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("split", 2, 2, func(args []value.Value) (value.Value, error) {
			s, err := asString("split", args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asString("split", args[1])
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, sep)
			elems := make([]value.Value, len(parts))
			for i, p := range parts {
				elems[i] = &value.String{Value: p}
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("join", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("join", args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asString("join", args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(list.Elements))
			for i, el := range list.Elements {
				parts[i] = el.String()
			}
			return &value.String{Value: strings.Join(parts, sep)}, nil
		}),

		bi("replace", 3, 3, func(args []value.Value) (value.Value, error) {
			s, err := asString("replace", args[0])
			if err != nil {
				return nil, err
			}
			old, err := asString("replace", args[1])
			if err != nil {
				return nil, err
			}
			newS, err := asString("replace", args[2])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: strings.ReplaceAll(s, old, newS)}, nil
		}),

		bi("trim", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("trim", args[0])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: strings.TrimSpace(s)}, nil
		}),

		bi("toUpperCase", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("toUpperCase", args[0])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: strings.ToUpper(s)}, nil
		}),

		bi("toLowerCase", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("toLowerCase", args[0])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: strings.ToLower(s)}, nil
		}),

		bi("contains", 2, 2, func(args []value.Value) (value.Value, error) {
			s, err := asString("contains", args[0])
			if err != nil {
				return nil, err
			}
			sub, err := asString("contains", args[1])
			if err != nil {
				return nil, err
			}
			return &value.Bool{Value: strings.Contains(s, sub)}, nil
		}),

		bi("matchRegex", 2, 2, func(args []value.Value) (value.Value, error) {
			pattern, err := asString("matchRegex", args[0])
			if err != nil {
				return nil, err
			}
			s, err := asString("matchRegex", args[1])
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "matchRegex: invalid pattern: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.Bool{Value: re.MatchString(s)}, nil
		}),

		bi("findRegex", 2, 2, func(args []value.Value) (value.Value, error) {
			pattern, err := asString("findRegex", args[0])
			if err != nil {
				return nil, err
			}
			s, err := asString("findRegex", args[1])
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "findRegex: invalid pattern: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: re.FindString(s)}, nil
		}),

		bi("replaceRegex", 3, 3, func(args []value.Value) (value.Value, error) {
			pattern, err := asString("replaceRegex", args[0])
			if err != nil {
				return nil, err
			}
			s, err := asString("replaceRegex", args[1])
			if err != nil {
				return nil, err
			}
			repl, err := asString("replaceRegex", args[2])
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "replaceRegex: invalid pattern: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: re.ReplaceAllString(s, repl)}, nil
		}),

		bi("base64Encode", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("base64Encode", args[0])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: base64.StdEncoding.EncodeToString([]byte(s))}, nil
		}),

		bi("base64Decode", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("base64Decode", args[0])
			if err != nil {
				return nil, err
			}
			raw, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "base64Decode: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: string(raw)}, nil
		}),

		bi("hexEncode", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("hexEncode", args[0])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: hex.EncodeToString([]byte(s))}, nil
		}),

		bi("hexDecode", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("hexDecode", args[0])
			if err != nil {
				return nil, err
			}
			raw, err := hex.DecodeString(s)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "hexDecode: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: string(raw)}, nil
		}),

		bi("urlEncode", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("urlEncode", args[0])
			if err != nil {
				return nil, err
			}
			return &value.String{Value: url.QueryEscape(s)}, nil
		}),

		bi("urlDecode", 1, 1, func(args []value.Value) (value.Value, error) {
			s, err := asString("urlDecode", args[0])
			if err != nil {
				return nil, err
			}
			decoded, err := url.QueryUnescape(s)
			if err != nil {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "urlDecode: %v", err).WithCode(diagnostic.CodeTypeMismatch)
			}
			return &value.String{Value: decoded}, nil
		}),
	}
}
