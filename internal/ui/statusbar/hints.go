package statusbar

import "github.com/riordanpawley/focus/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "space: start/stop  d: done  a: add  ?: help  q: quit"
	case types.ModeInsert:
		return "Enter: add  Esc: cancel"
	case types.ModeConfirm:
		return "y: confirm  n: cancel"
	case types.ModeHelp:
		return "Esc: close"
	default:
		return ""
	}
}
