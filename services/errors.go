package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrPlayerNameRequired    = errors.New("player name is required")
	ErrMatchSameTeam         = errors.New("a match needs two distinct teams")
	ErrMatchInvalidStatus    = errors.New("invalid match status provided")
	ErrMatchInvalidPhase     = errors.New("invalid match phase provided")
	ErrMatchGroupRequired    = errors.New("group-phase matches require a group label")
	ErrMatchNegativeScore    = errors.New("match scores must be non-negative")
	ErrPredictionLocked      = errors.New("predictions are locked for this match")
	ErrPredictionInvalidType = errors.New("invalid prediction type provided")
	ErrPredictionIncomplete  = errors.New("prediction is missing fields required by its type")
	ErrGroupLabelRequired    = errors.New("group label is required")

	// Conflicts
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserNicknameConflict = errors.New("nickname is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrStandingNotFound   = errors.New("group standing not found")
)
