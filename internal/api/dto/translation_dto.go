package dto

import "time"

type CreateTranslationRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type CreateTranslationResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

type TranslationResponse struct {
	RequestID      string    `json:"requestId"`
	Status         string    `json:"status"`
	OriginalText   string    `json:"originalText"`
	TranslatedText *string   `json:"translatedText"`
	TargetLanguage string    `json:"targetLanguage"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
