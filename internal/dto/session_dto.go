package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	RoomKey string `json:"room_key" validate:"required,max=100"`
	Mode    string `json:"mode" validate:"required,oneof=PROJECT QUICK SELF_SERVE"`
}

type CreateSessionResponse struct {
	Id      uuid.UUID `json:"id"`
	RoomKey string    `json:"room_key"`
	Mode    string    `json:"mode"`
	Status  string    `json:"status"`
}

type JoinSessionRequest struct {
	Identity string `json:"identity" validate:"required,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=HOST CLIENT"`
}

type JoinSessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	RoomKey   string    `json:"room_key"`
	Mode      string    `json:"mode"`
	Role      string    `json:"role"`
	InviteUrl string    `json:"invite_url,omitempty"`
}

type ShowSessionResponse struct {
	Id           uuid.UUID  `json:"id"`
	RoomKey      string     `json:"room_key"`
	Mode         string     `json:"mode"`
	Status       string     `json:"status"`
	RecordingUrl string     `json:"recording_url,omitempty"`
	Participants int        `json:"participants"`
	StreamOpen   bool       `json:"stream_open"`
	CreatedAt    time.Time  `json:"created_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

type EndSessionResponse struct {
	RoomKey string     `json:"room_key"`
	Status  string     `json:"status"`
	EndedAt *time.Time `json:"ended_at"`
}

type UpdateRecordingRequest struct {
	RecordingUrl string `json:"recording_url" validate:"required,url"`
}

type UpdateRecordingResponse struct {
	RoomKey      string `json:"room_key"`
	RecordingUrl string `json:"recording_url"`
}
