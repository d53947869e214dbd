// Package input turns raw keyboard events into kernel actions.
//
// Resolution is a pure pipeline:
//
//   - Sense: the host builds an Input from its native event (canonical key,
//     IME composition, prevented default, editing state).
//   - Classify: the key is classified as COMMAND, FIELD or PASSTHRU.
//   - Resolve: guards, the Space-to-check special case and the keymap
//     produce a Resolution.
//
// # Resolutions
//
//   - Ignore: a guard rejected the event. Nothing is dispatched.
//   - Check: Space on a checkable item. The host dispatches OS_CHECK.
//   - Dispatch: a keybinding matched. The Resolution carries the command.
//   - Fallback: nothing matched. The host lets the event through to the
//     focused widget (text inputs, native controls).
//
// # Usage
//
//	res := input.Resolve(in, registry)
//	if res.Kind == input.Dispatch || res.Kind == input.Check {
//	    kernel.Dispatch(res.Command)
//	}
package input
