package domain

import "errors"

// ErrEmptyHistory is returned when going back with nothing to go back to.
var ErrEmptyHistory = errors.New("empty history")

// ErrUnknownScene is returned when a navigation target is absent from the registry.
var ErrUnknownScene = errors.New("unknown scene")

// ErrInteractionNotFound is returned when an interaction index is out of range.
var ErrInteractionNotFound = errors.New("interaction not found")

// ErrMalformedAction is returned when an action payload lacks a recognizable type identifier.
var ErrMalformedAction = errors.New("malformed action")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrReadOnlyTour is returned when the tour source does not accept edits.
var ErrReadOnlyTour = errors.New("tour is read-only")

// ErrEmptyTour is returned when a tour has no scenes to start from.
var ErrEmptyTour = errors.New("tour has no scenes")
