package leads

import "errors"

var (
	// ErrMissingSession is returned when a lead has no originating wizard session
	ErrMissingSession = errors.New("session_id is required")

	// ErrMissingTier is returned when no tier was selected
	ErrMissingTier = errors.New("tier is required")

	// ErrMissingContact is returned when the email is missing
	ErrMissingContact = errors.New("email is required")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
