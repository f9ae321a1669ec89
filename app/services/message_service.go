package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/akxton/app/models"
)

// MessageService accepts public contact-form submissions.
type MessageService struct {
	messages MessageStore
}

func NewMessageService(messages MessageStore) *MessageService {
	return &MessageService{messages: messages}
}

// MessageInput is a contact-form submission.
type MessageInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Number  string `json:"number" validate:"required,max=15"`
	Message string `json:"message" validate:"required,max=2000"`
}

// Send stores a contact-form submission for later admin review.
func (s *MessageService) Send(ctx context.Context, in MessageInput) (*models.Message, error) {
	message := &models.Message{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Number:  strings.TrimSpace(in.Number),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}
