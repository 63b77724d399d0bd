// Package types contains shared types used across the application.
package types

// Mode represents the current input mode of the list view
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeConfirm
	ModeHelp
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeConfirm:
		return "CONFIRM"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}
