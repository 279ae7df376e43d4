// File: internal/handlers/chat_handler.go
package handlers

import (
	"errors"
	"net/http"

	conversationrepo "literarychat/internal/repository/conversation"
	"literarychat/internal/services"
	"literarychat/internal/services/chat"
)

// ChatHandler serves the JSON endpoints the chat page calls.
type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage handles one chat turn. The message arrives as a form field;
// the response carries both sides of the turn plus the audio and avatar
// URLs.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID, err := parseUintVar(r, "id")
	if err != nil {
		writeError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	result, err := h.chatService.SendMessage(r.Context(), conversationID, r.PostFormValue("message"))
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			writeError(w, "Message cannot be empty.", http.StatusBadRequest)
		case errors.Is(err, conversationrepo.ErrConversationNotFound):
			writeError(w, "Conversation not found.", http.StatusNotFound)
		default:
			var chatErr *chat.ChatError
			if errors.As(err, &chatErr) && chatErr.Type == chat.ErrTypeValidation {
				writeError(w, chatErr.Message, http.StatusBadRequest)
				return
			}
			writeError(w, "Could not process your message. Please try again.", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_message":       result.UserMessage,
		"character_response": result.CharacterResponse,
		"audio_url":          result.AudioURL,
		"avatar_url":         result.AvatarURL,
	})
}

// DeleteConversation wipes a conversation's history and tells the client
// where to go next.
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	conversationID, err := parseUintVar(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Invalid conversation ID",
		})
		return
	}

	redirectURL, err := h.chatService.DeleteConversation(r.Context(), conversationID)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Could not delete conversation."
		if errors.Is(err, conversationrepo.ErrConversationNotFound) {
			status = http.StatusNotFound
			message = "Conversation not found."
		}
		writeJSON(w, status, map[string]interface{}{
			"success": false,
			"error":   message,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"redirect_url": redirectURL,
	})
}
