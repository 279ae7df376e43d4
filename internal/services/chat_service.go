package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"literarychat/internal/domain"
	characterrepo "literarychat/internal/repository/character"
	conversationrepo "literarychat/internal/repository/conversation"
	messagerepo "literarychat/internal/repository/message"
	"literarychat/internal/services/chat"
)

// TurnResult is everything a completed chat turn hands back to the HTTP
// layer: both persisted messages plus the optional audio and avatar URLs.
type TurnResult struct {
	UserMessage       string
	CharacterResponse string
	AudioURL          string
	AvatarURL         string
}

// ChatService orchestrates conversations: session-scoped lookup, the
// message/reply/speech turn, and deletion.
type ChatService struct {
	config           *chat.Config
	characterRepo    characterrepo.CharacterRepository
	conversationRepo conversationrepo.ConversationRepository
	messageRepo      messagerepo.MessageRepository
	query            *QueryService
	speech           *SpeechService
	logger           Logger
}

func NewChatService(
	config *chat.Config,
	characterRepo characterrepo.CharacterRepository,
	conversationRepo conversationrepo.ConversationRepository,
	messageRepo messagerepo.MessageRepository,
	query *QueryService,
	speech *SpeechService,
	logger Logger,
) (*ChatService, error) {
	if config == nil {
		config = chat.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chat config: %w", err)
	}
	if characterRepo == nil || conversationRepo == nil || messageRepo == nil {
		return nil, fmt.Errorf("chat service repositories cannot be nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query service cannot be nil")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &ChatService{
		config:           config,
		characterRepo:    characterRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		query:            query,
		speech:           speech,
		logger:           logger,
	}, nil
}

// StartConversation returns the character, the session's conversation with
// that character, and the conversation's messages oldest first. The
// conversation is created on first visit and reused afterwards.
func (s *ChatService) StartConversation(ctx context.Context, characterID uint, session string) (*domain.Character, *domain.Conversation, []domain.Message, error) {
	character, err := s.characterRepo.FindByID(ctx, characterID)
	if err != nil {
		return nil, nil, nil, err
	}

	conversation, created, err := s.conversationRepo.GetOrCreate(ctx, characterID, session)
	if err != nil {
		return nil, nil, nil, err
	}
	if created {
		s.logger.Info("conversation started", "conversation_id", conversation.ID, "character_id", characterID)
	}

	messages, err := s.messageRepo.FindByConversationID(ctx, conversation.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return character, conversation, messages, nil
}

// SendMessage runs one chat turn: persist the user message, attempt a
// grounded reply, persist whatever reply the user will see (the apology on a
// degraded turn), and synthesize speech for it. A blank message is rejected
// before anything is written. Speech failures never fail the turn.
func (s *ChatService) SendMessage(ctx context.Context, conversationID uint, text string) (*TurnResult, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil, chat.ErrEmptyMessage
	}
	if s.config.MaxMessageRunes > 0 && utf8.RuneCountInString(message) > s.config.MaxMessageRunes {
		return nil, chat.NewValidationError("send_message",
			fmt.Sprintf("message exceeds %d characters", s.config.MaxMessageRunes))
	}

	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	character := &conversation.Character

	if _, err := s.messageRepo.Create(ctx, &domain.Message{
		ConversationID: conversation.ID,
		Role:           domain.RoleUser,
		Content:        message,
	}); err != nil {
		return nil, err
	}

	reply := s.query.QueryCharacter(ctx, character, message, nil)
	responseText := reply.Text
	if reply.Kind != chat.ReplyOK {
		s.logger.Warn("turn degraded to apology",
			"conversation_id", conversation.ID, "outcome", reply.Kind.String(), "error", reply.Err)
		responseText = chat.ApologyReply
	}

	if _, err := s.messageRepo.Create(ctx, &domain.Message{
		ConversationID: conversation.ID,
		Role:           domain.RoleCharacter,
		Content:        responseText,
	}); err != nil {
		return nil, err
	}

	audioURL := ""
	if s.speech != nil {
		url, err := s.speech.SpeechForText(ctx, responseText, character.Voice)
		if err != nil {
			s.logger.Warn("speech synthesis skipped", "conversation_id", conversation.ID, "error", err)
		} else {
			audioURL = url
		}
	}

	return &TurnResult{
		UserMessage:       message,
		CharacterResponse: responseText,
		AudioURL:          audioURL,
		AvatarURL:         MediaURL(character.AvatarPath),
	}, nil
}

// DeleteConversation removes the conversation and its messages and returns
// the chat URL to redirect to, which restarts a fresh conversation with the
// same character.
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID uint) (string, error) {
	conversation, err := s.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return "", err
	}
	if err := s.conversationRepo.Delete(ctx, conversationID); err != nil {
		return "", err
	}
	s.logger.Info("conversation deleted", "conversation_id", conversationID, "character_id", conversation.CharacterID)
	return fmt.Sprintf("/chat/%d/", conversation.CharacterID), nil
}

// MediaURL maps a media-root relative path to its serving URL. Empty paths
// map to the empty string so templates can fall back to a placeholder.
func MediaURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "media/" + strings.TrimPrefix(relPath, "/")
}
