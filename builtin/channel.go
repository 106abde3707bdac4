package builtin

import "github.com/leadotlang/lea/value"

// channelBuiltins wires up spec.md §5's "Channels" paragraph: a bounded
// FIFO with blocking send/receive and drain-then-Null semantics on close.
// value.Channel already implements the suspension behavior (Send/Receive
// block on the underlying Go channel); these builtins are a thin surface
// over it, grounded the same way builtin/async.go exposes value.Promise.
func channelBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("channel", 1, 1, func(args []value.Value) (value.Value, error) {
			n, err := asInt("channel", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewChannel(int(n)), nil
		}),

		bi("send", 2, 2, func(args []value.Value) (value.Value, error) {
			ch, ok := args[0].(*value.Channel)
			if !ok {
				return nil, typeErr("send", "a channel", args[0])
			}
			if err := ch.Send(args[1]); err != nil {
				return nil, err
			}
			return args[1], nil
		}),

		bi("receive", 1, 1, func(args []value.Value) (value.Value, error) {
			ch, ok := args[0].(*value.Channel)
			if !ok {
				return nil, typeErr("receive", "a channel", args[0])
			}
			v, _ := ch.Receive()
			return v, nil
		}),

		bi("close", 1, 1, func(args []value.Value) (value.Value, error) {
			ch, ok := args[0].(*value.Channel)
			if !ok {
				return nil, typeErr("close", "a channel", args[0])
			}
			ch.Close()
			return value.TheNull, nil
		}),
	}
}
