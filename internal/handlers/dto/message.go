package dto

import "github.com/thereayou/study-hours/internal/models"

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessagesResponse — страница сообщений в хронологическом порядке.
// HasMore false — более старых сообщений нет.
type MessagesResponse struct {
	Messages []models.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}
