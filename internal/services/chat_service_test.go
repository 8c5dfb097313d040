// File: internal/services/chat_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/niksalehi/go-visionchat/internal/domain"
	chatrepo "github.com/niksalehi/go-visionchat/internal/repository/chat"
	"github.com/niksalehi/go-visionchat/internal/services/ai"
	chatservice "github.com/niksalehi/go-visionchat/internal/services/chat"
)

// -------- test fakes --------

type fakeChatRepo struct {
	chats      map[uint]*domain.Chat
	nextID     uint
	titleCalls []string
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[uint]*domain.Chat), nextID: 1}
}

func (f *fakeChatRepo) Create(_ context.Context, chat *domain.Chat) (*domain.Chat, error) {
	chat.ID = f.nextID
	f.nextID++
	if chat.Title == "" {
		chat.Title = domain.DefaultChatTitle
	}
	f.chats[chat.ID] = chat
	return chat, nil
}

func (f *fakeChatRepo) FindByUserID(_ context.Context, userID uint) ([]domain.Chat, error) {
	var out []domain.Chat
	for id := uint(1); id < f.nextID; id++ {
		if c, ok := f.chats[id]; ok && c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) FindByIDAndUserID(_ context.Context, chatID, userID uint) (*domain.Chat, error) {
	c, ok := f.chats[chatID]
	if !ok || c.UserID != userID {
		return nil, chatrepo.ErrChatNotFound
	}
	return c, nil
}

func (f *fakeChatRepo) Delete(_ context.Context, chatID, userID uint) error {
	c, ok := f.chats[chatID]
	if !ok || c.UserID != userID {
		return chatrepo.ErrChatNotFound
	}
	delete(f.chats, chatID)
	return nil
}

func (f *fakeChatRepo) SetTitleIfDefault(_ context.Context, chatID uint, title string) error {
	f.titleCalls = append(f.titleCalls, title)
	c, ok := f.chats[chatID]
	if ok && c.Title == domain.DefaultChatTitle {
		c.Title = title
	}
	return nil
}

type fakeMessageRepo struct {
	messages  map[uint][]domain.Message
	appendErr error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uint][]domain.Message)}
}

func (f *fakeMessageRepo) FindByChatID(_ context.Context, chatID uint) ([]domain.Message, error) {
	return f.messages[chatID], nil
}

func (f *fakeMessageRepo) AppendExchange(_ context.Context, chatID uint, userText, botText string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.messages[chatID] = append(f.messages[chatID],
		domain.Message{ChatID: chatID, Sender: domain.SenderUser, Text: userText},
		domain.Message{ChatID: chatID, Sender: domain.SenderBot, Text: botText},
	)
	return nil
}

type fakeProvider struct {
	reply      string
	err        error
	completes  int
	imageCalls int
}

func (f *fakeProvider) Complete(_ context.Context, query string) (string, error) {
	f.completes++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) AnalyzeImage(_ context.Context, prompt string, image []byte) (string, error) {
	f.imageCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(t *testing.T, chats *fakeChatRepo, msgs *fakeMessageRepo, provider ai.Provider) *ChatService {
	t.Helper()

	svc, err := NewChatService(chats, msgs, provider, &NoOpLogger{})
	require.NoError(t, err)
	svc.retryConfig = &ai.RetryConfig{MaxAttempts: 1, Delay: time.Millisecond}
	return svc
}

var alice = domain.Principal{UserID: 1, Email: "alice@example.com"}
var mallory = domain.Principal{UserID: 2, Email: "mallory@example.com"}

// -------- tests --------

func TestCreateChat_SentinelTitle(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, newFakeMessageRepo(), &fakeProvider{})

	created, err := svc.CreateChat(context.Background(), alice)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultChatTitle, created.Title)
	require.Equal(t, alice.UserID, created.UserID)
}

func TestGetChat_OwnershipIndistinguishable(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, newFakeMessageRepo(), &fakeProvider{})
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	_, errNonOwner := svc.GetChat(ctx, mallory, created.ID)
	_, errAbsent := svc.GetChat(ctx, mallory, 9999)

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, errNonOwner, &chatErr)
	require.Equal(t, chatservice.ErrTypeNotFound, chatErr.Type)
	require.ErrorAs(t, errAbsent, &chatErr)
	require.Equal(t, chatservice.ErrTypeNotFound, chatErr.Type)
}

func TestDeleteChat_NonOwnerNotFound(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, newFakeMessageRepo(), &fakeProvider{})
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, svc.DeleteChat(ctx, mallory, created.ID), &chatErr)
	require.Equal(t, chatservice.ErrTypeNotFound, chatErr.Type)

	require.NoError(t, svc.DeleteChat(ctx, alice, created.ID))
}

func TestSendText_AppendsPairAndDerivesTitle(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	msgs := newFakeMessageRepo()
	provider := &fakeProvider{reply: "[Mock AI] You said: Tell me about rainbows and how they form in the sky today"}
	svc := newTestService(t, chats, msgs, provider)
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	query := "Tell me about rainbows and how they form in the sky today"
	reply, err := svc.SendText(ctx, alice, created.ID, query)
	require.NoError(t, err)
	require.Equal(t, provider.reply, reply)

	transcript := msgs.messages[created.ID]
	require.Len(t, transcript, 2)
	require.Equal(t, domain.SenderUser, transcript[0].Sender)
	require.Equal(t, query, transcript[0].Text)
	require.Equal(t, domain.SenderBot, transcript[1].Sender)
	require.Equal(t, reply, transcript[1].Text)

	require.Equal(t, query[:30]+"...", chats.chats[created.ID].Title)

	// A second exchange must not alter the title again.
	_, err = svc.SendText(ctx, alice, created.ID, "something completely different")
	require.NoError(t, err)
	require.Equal(t, query[:30]+"...", chats.chats[created.ID].Title)
}

func TestSendText_ShortQueryTitleHasNoEllipsis(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, newFakeMessageRepo(), &fakeProvider{reply: "hi"})
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	_, err = svc.SendText(ctx, alice, created.ID, "Short question")
	require.NoError(t, err)
	require.Equal(t, "Short question", chats.chats[created.ID].Title)
}

func TestSendText_GatewayFailureLeavesChatUntouched(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	msgs := newFakeMessageRepo()
	provider := &fakeProvider{err: ai.NewProviderError("completion", "quota exceeded", 429, nil)}
	svc := newTestService(t, chats, msgs, provider)
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	_, err = svc.SendText(ctx, alice, created.ID, "does this persist?")

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, chatservice.ErrTypeGateway, chatErr.Type)

	require.Empty(t, msgs.messages[created.ID])
	require.Equal(t, domain.DefaultChatTitle, chats.chats[created.ID].Title)
	require.Empty(t, chats.titleCalls)
}

func TestSendText_OwnershipCheckedBeforeGatewayCall(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{reply: "hi"}
	svc := newTestService(t, newFakeChatRepo(), newFakeMessageRepo(), provider)

	_, err := svc.SendText(context.Background(), alice, 9999, "hello?")

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, chatservice.ErrTypeNotFound, chatErr.Type)
	require.Zero(t, provider.completes)
}

func TestSendText_ChatlessExchangeNotPersisted(t *testing.T) {
	t.Parallel()
	msgs := newFakeMessageRepo()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, msgs, &fakeProvider{reply: "ephemeral"})

	reply, err := svc.SendText(context.Background(), alice, 0, "no chat here")
	require.NoError(t, err)
	require.Equal(t, "ephemeral", reply)
	require.Empty(t, msgs.messages)
	require.Empty(t, chats.titleCalls)
}

func TestSendText_EmptyQueryRejected(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{reply: "hi"}
	svc := newTestService(t, newFakeChatRepo(), newFakeMessageRepo(), provider)

	_, err := svc.SendText(context.Background(), alice, 0, "   ")

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, chatservice.ErrTypeValidation, chatErr.Type)
	require.Zero(t, provider.completes)
}

func TestSendImage_AppendsPairWithoutTitle(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	msgs := newFakeMessageRepo()
	svc := newTestService(t, chats, msgs, &fakeProvider{reply: "a sunset over water"})
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	reply, err := svc.SendImage(ctx, alice, created.ID, "what is in this picture?", []byte{0x89, 0x50})
	require.NoError(t, err)
	require.Equal(t, "a sunset over water", reply)

	transcript := msgs.messages[created.ID]
	require.Len(t, transcript, 2)
	require.Equal(t, "what is in this picture?", transcript[0].Text)
	require.Equal(t, reply, transcript[1].Text)

	// Image exchanges never derive a title.
	require.Equal(t, domain.DefaultChatTitle, chats.chats[created.ID].Title)
	require.Empty(t, chats.titleCalls)
}

func TestSendImage_DefaultPrompt(t *testing.T) {
	t.Parallel()
	msgs := newFakeMessageRepo()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, msgs, &fakeProvider{reply: "described"})
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	_, err = svc.SendImage(ctx, alice, created.ID, "", []byte{0x01})
	require.NoError(t, err)
	require.Equal(t, "Describe this image.", msgs.messages[created.ID][0].Text)
}

func TestSendImage_MissingImageRejected(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, newFakeChatRepo(), newFakeMessageRepo(), &fakeProvider{})

	_, err := svc.SendImage(context.Background(), alice, 0, "prompt", nil)

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, chatservice.ErrTypeValidation, chatErr.Type)
}

func TestGetUserChats_OnlyOwnChats(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	svc := newTestService(t, chats, newFakeMessageRepo(), &fakeProvider{})
	ctx := context.Background()

	_, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)
	_, err = svc.CreateChat(ctx, mallory)
	require.NoError(t, err)

	owned, err := svc.GetUserChats(ctx, alice)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, alice.UserID, owned[0].UserID)
}

func TestNewChatService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewChatService(nil, newFakeMessageRepo(), &fakeProvider{}, nil)
	require.Error(t, err)

	_, err = NewChatService(newFakeChatRepo(), nil, &fakeProvider{}, nil)
	require.Error(t, err)

	_, err = NewChatService(newFakeChatRepo(), newFakeMessageRepo(), nil, nil)
	require.Error(t, err)
}

func TestSendText_StorageFailureSurfaced(t *testing.T) {
	t.Parallel()
	chats := newFakeChatRepo()
	msgs := newFakeMessageRepo()
	msgs.appendErr = errors.New("disk full")
	svc := newTestService(t, chats, msgs, &fakeProvider{reply: "hi"})
	ctx := context.Background()

	created, err := svc.CreateChat(ctx, alice)
	require.NoError(t, err)

	_, err = svc.SendText(ctx, alice, created.ID, "hello")

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, chatservice.ErrTypeStorage, chatErr.Type)
}
