// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryScan   Op = "scan song folders"
	OpLibraryLoad   Op = "load songs"
	OpLibraryDelete Op = "delete level"

	// Browser operations
	OpSortSelect     Op = "change sort mode"
	OpFavoriteToggle Op = "update favorites"
	OpLevelSelect    Op = "select level"

	// Persistence
	OpSettingsLoad  Op = "load settings"
	OpSettingsSave  Op = "save settings"
	OpFavoritesLoad Op = "load favorites"
	OpFavoritesSave Op = "save favorites"

	// Play statistics
	OpStatsLoad   Op = "load play statistics"
	OpStatsRecord Op = "record play"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
