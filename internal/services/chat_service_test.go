package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"literarychat/internal/domain"
	characterrepo "literarychat/internal/repository/character"
	conversationrepo "literarychat/internal/repository/conversation"
	messagerepo "literarychat/internal/repository/message"
	"literarychat/internal/services/chat"
	"literarychat/internal/services/vectorstore"
)

type chatFixture struct {
	db        *gorm.DB
	character *domain.Character
	provider  *fakeAIProvider
	store     *fakeStore
	tts       *fakeTTSProvider
	svc       *ChatService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	db := newTestDB(t)

	book := createTestBook(t, db, writeBookText(t, "It is a truth universally acknowledged."))
	if err := db.Model(&domain.Book{}).Where("id = ?", book.ID).
		Updates(map[string]interface{}{"is_processed": true, "vector_store_path": "book_1"}).Error; err != nil {
		t.Fatalf("failed to mark book processed: %v", err)
	}

	charRepo := characterrepo.NewCharacterRepository(db)
	character, err := charRepo.Create(context.Background(), &domain.Character{
		BookID:            book.ID,
		Name:              "Elizabeth Bennet",
		Description:       "The witty second Bennet daughter.",
		PersonalityTraits: "witty, independent",
		Voice:             "en-GB-Neural2-A",
	})
	if err != nil {
		t.Fatalf("failed to create character: %v", err)
	}

	provider := &fakeAIProvider{
		embedding:  []float32{0.1, 0.2},
		completion: "He is proud, but I confess he improves on acquaintance.",
	}
	store := &fakeStore{matches: []vectorstore.Match{
		{Text: "Mr. Darcy soon drew the attention of the room.", Score: 0.93},
		{Text: "He was discovered to be proud.", Score: 0.88},
		{Text: "She hardly knew how to suppose that she could be an object of admiration.", Score: 0.80},
	}}
	query, err := NewQueryService(nil, provider, store, &NoOpLogger{})
	if err != nil {
		t.Fatalf("NewQueryService failed: %v", err)
	}

	ttsProvider := &fakeTTSProvider{audio: []byte("mp3")}
	speech := NewSpeechService(ttsProvider, t.TempDir(), "", &NoOpLogger{})

	svc, err := NewChatService(nil,
		charRepo,
		conversationrepo.NewConversationRepository(db),
		messagerepo.NewMessageRepository(db),
		query, speech, &NoOpLogger{})
	if err != nil {
		t.Fatalf("NewChatService failed: %v", err)
	}

	return &chatFixture{db: db, character: character, provider: provider, store: store, tts: ttsProvider, svc: svc}
}

func TestStartConversationReusesSessionConversation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, first, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("first StartConversation failed: %v", err)
	}
	_, again, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("second StartConversation failed: %v", err)
	}
	if first.ID != again.ID {
		t.Fatalf("same session should reuse the conversation, got %d then %d", first.ID, again.ID)
	}

	_, other, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-b")
	if err != nil {
		t.Fatalf("StartConversation for second session failed: %v", err)
	}
	if other.ID == first.ID {
		t.Fatal("different sessions must get different conversations")
	}
}

func TestStartConversationUnknownCharacter(t *testing.T) {
	f := newChatFixture(t)

	_, _, _, err := f.svc.StartConversation(context.Background(), 9999, "session-a")
	if !errors.Is(err, characterrepo.ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}
}

// Full happy-path turn: Pride and Prejudice indexed, Elizabeth Bennet asked
// about Mr. Darcy. Both messages persist and the reply gets audio.
func TestSendMessageFullTurn(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, conv, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	result, err := f.svc.SendMessage(ctx, conv.ID, "What do you think of Mr. Darcy?")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if result.UserMessage != "What do you think of Mr. Darcy?" {
		t.Fatalf("unexpected user message %q", result.UserMessage)
	}
	if result.CharacterResponse == "" || result.CharacterResponse == chat.ApologyReply {
		t.Fatalf("expected a grounded reply, got %q", result.CharacterResponse)
	}
	if !audioPathPattern.MatchString(result.AudioURL) {
		t.Fatalf("unexpected audio URL %q", result.AudioURL)
	}

	messages, err := messagerepo.NewMessageRepository(f.db).FindByConversationID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("FindByConversationID failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(messages))
	}
	if messages[0].Role != domain.RoleUser || messages[1].Role != domain.RoleCharacter {
		t.Fatalf("unexpected roles %q, %q", messages[0].Role, messages[1].Role)
	}
	if messages[1].Content != result.CharacterResponse {
		t.Fatal("persisted reply differs from returned reply")
	}
}

func TestSendMessageBlankLeavesNoTrace(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, conv, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	if _, err := f.svc.SendMessage(ctx, conv.ID, "   \n "); !errors.Is(err, chat.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	count, err := messagerepo.NewMessageRepository(f.db).CountByConversationID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("CountByConversationID failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("blank message must persist nothing, found %d messages", count)
	}
	if f.provider.embedCalls != 0 || f.tts.calls != 0 {
		t.Fatal("blank message must not reach any provider")
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.SendMessage(context.Background(), 12345, "Hello")
	if !errors.Is(err, conversationrepo.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

// A completion failure still records both sides of the turn; the persisted
// reply is the apology, and the apology itself gets audio.
func TestSendMessageDegradedTurnPersistsApology(t *testing.T) {
	f := newChatFixture(t)
	f.provider.completeErr = errors.New("model overloaded")
	ctx := context.Background()

	_, conv, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	result, err := f.svc.SendMessage(ctx, conv.ID, "Tell me about Pemberley.")
	if err != nil {
		t.Fatalf("SendMessage should not fail on a degraded turn: %v", err)
	}
	if result.CharacterResponse != chat.ApologyReply {
		t.Fatalf("expected apology reply, got %q", result.CharacterResponse)
	}
	if !audioPathPattern.MatchString(result.AudioURL) {
		t.Fatalf("apology should still be synthesized, got %q", result.AudioURL)
	}

	messages, _ := messagerepo.NewMessageRepository(f.db).FindByConversationID(ctx, conv.ID)
	if len(messages) != 2 || messages[1].Content != chat.ApologyReply {
		t.Fatalf("apology must be persisted as the character message, got %+v", messages)
	}
}

func TestSendMessageSpeechFailureIsNonFatal(t *testing.T) {
	f := newChatFixture(t)
	f.tts.err = errors.New("tts quota exceeded")
	ctx := context.Background()

	_, conv, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}

	result, err := f.svc.SendMessage(ctx, conv.ID, "Good evening.")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if result.AudioURL != "" {
		t.Fatalf("expected empty audio URL when synthesis fails, got %q", result.AudioURL)
	}
	if result.CharacterResponse == "" {
		t.Fatal("reply text must survive a speech failure")
	}
}

func TestDeleteConversationRemovesHistory(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, conv, _, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("StartConversation failed: %v", err)
	}
	if _, err := f.svc.SendMessage(ctx, conv.ID, "Hello."); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	redirect, err := f.svc.DeleteConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("DeleteConversation failed: %v", err)
	}
	if want := fmt.Sprintf("/chat/%d/", f.character.ID); redirect != want {
		t.Fatalf("redirect = %q, want %q", redirect, want)
	}

	if _, err := conversationrepo.NewConversationRepository(f.db).FindByID(ctx, conv.ID); !errors.Is(err, conversationrepo.ErrConversationNotFound) {
		t.Fatalf("conversation should be gone, got %v", err)
	}
	count, _ := messagerepo.NewMessageRepository(f.db).CountByConversationID(ctx, conv.ID)
	if count != 0 {
		t.Fatalf("messages should cascade away, found %d", count)
	}

	// A fresh visit after deletion starts a new, empty conversation.
	_, fresh, messages, err := f.svc.StartConversation(ctx, f.character.ID, "session-a")
	if err != nil {
		t.Fatalf("StartConversation after delete failed: %v", err)
	}
	if fresh.ID == conv.ID || len(messages) != 0 {
		t.Fatalf("expected a fresh empty conversation, got id=%d with %d messages", fresh.ID, len(messages))
	}
}

func TestDeleteConversationUnknown(t *testing.T) {
	f := newChatFixture(t)

	if _, err := f.svc.DeleteConversation(context.Background(), 777); !errors.Is(err, conversationrepo.ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}
