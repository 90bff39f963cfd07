package service

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session already ended")
	ErrRoomExists      = errors.New("room key already in use for this tenant")
	ErrInvalidRole     = errors.New("role not valid for this session mode")
	ErrReservedArea    = errors.New("area value is a reserved filter token")
	ErrUnknownType     = errors.New("unknown scope item type")
	ErrMissingCounts   = errors.New("DETECTION item requires detection data")
	ErrItemNotFound    = errors.New("scope item not found")
)
