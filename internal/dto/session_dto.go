package dto

import "eduease-be/internal/entity"

type CreateSessionRequest struct {
	Name string `json:"name" validate:"omitempty,max=100"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	Token     string `json:"token"`
	Name      string `json:"name,omitempty"`
}

type IdentifyRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type IdentityResponse struct {
	Name       string `json:"name"`
	Identified bool   `json:"identified"`
}

type SendMessageRequest struct {
	Input string `json:"input"`
}

type SendMessageResponse struct {
	Messages []entity.Message `json:"messages"`
}

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddResourceRequest struct {
	Resource entity.Resource `json:"resource"`
}

type SaveResourceRequest struct {
	Resource      entity.Resource `json:"resource"`
	Collection    string          `json:"collection" validate:"required"`
	ConfirmCreate *bool           `json:"confirm_create,omitempty"`
}

type SaveResourceResponse struct {
	Outcome    string            `json:"outcome"`
	Collection entity.Collection `json:"collection"`
}

type ExpandSessionResourceRequest struct {
	Resource entity.Resource `json:"resource"`
}

type UpdateSettingsRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	DarkMode *bool   `json:"dark_mode,omitempty"`
}

type SearchHistoryResponse struct {
	Queries []string `json:"queries"`
}
