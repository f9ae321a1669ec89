package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/pkg/response"
)

// MessageController serves the public contact form.
type MessageController struct {
	messages *services.MessageService
}

func NewMessageController(messages *services.MessageService) *MessageController {
	return &MessageController{messages: messages}
}

// Send handles POST /api/messages.
func (c *MessageController) Send(w http.ResponseWriter, r *http.Request) {
	var in services.MessageInput
	if !bindJSON(w, r, &in) {
		return
	}

	message, err := c.messages.Send(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Created(w, message)
}
