package server

import (
	"fmt"
	"ladder-tracker/internal/constants"
	"ladder-tracker/internal/routing"
	"strings"
	"unicode/utf8"
)

// ValidationError rejects a request before any upstream call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func validateRiotID(gameName, tagLine string) error {
	gameName = strings.TrimSpace(gameName)
	tagLine = strings.TrimSpace(tagLine)

	if gameName == "" || tagLine == "" {
		return &ValidationError{Message: "gameName and tagLine are required"}
	}
	if utf8.RuneCountInString(gameName) > constants.MaxGameNameLength {
		return invalid("gameName", "must be at most %d characters", constants.MaxGameNameLength)
	}
	if utf8.RuneCountInString(tagLine) > constants.MaxTagLineLength {
		return invalid("tagLine", "must be at most %d characters", constants.MaxTagLineLength)
	}
	return nil
}

// validatePlatform accepts an empty platform, which means the default.
func validatePlatform(field, platform string) error {
	if strings.TrimSpace(platform) == "" || routing.Known(platform) {
		return nil
	}
	return invalid(field, "unknown platform %q", platform)
}

func (r *actionRequest) validate() error {
	switch r.Action {
	case actionGetPlayer:
		if err := validateRiotID(r.GameName, r.TagLine); err != nil {
			return err
		}
	case actionGetMultiplePlayers:
		if r.Players == nil {
			return invalid("players", "players array is required")
		}
		if len(r.Players) > constants.MaxBatchSize {
			return invalid("players", "at most %d players per request, got %d", constants.MaxBatchSize, len(r.Players))
		}
	case actionAddRosterPlayer:
		if err := validateRiotID(r.GameName, r.TagLine); err != nil {
			return err
		}
		return validatePlatform("platform", r.Platform)
	case actionRemoveRosterPlayer:
		return validateRiotID(r.GameName, r.TagLine)
	case actionGetRoster:
	case "":
		return invalid("action", "action is required")
	default:
		return invalid("action", "unknown action: %s", r.Action)
	}
	return nil
}
