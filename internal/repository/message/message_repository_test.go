// File: internal/repository/message/message_repository_test.go
package message

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/niksalehi/go-visionchat/internal/domain"
)

func newTestRepo(t *testing.T) MessageRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Message{}))
	return NewMessageRepository(db)
}

func TestAppendExchange_PairOrder(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendExchange(ctx, 1, "what is the capital of Sweden?", "Stockholm."))
	require.NoError(t, repo.AppendExchange(ctx, 1, "and of Norway?", "Oslo."))

	messages, err := repo.FindByChatID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, messages, 4)

	require.Equal(t, domain.SenderUser, messages[0].Sender)
	require.Equal(t, "what is the capital of Sweden?", messages[0].Text)
	require.Equal(t, domain.SenderBot, messages[1].Sender)
	require.Equal(t, "Stockholm.", messages[1].Text)
	require.Equal(t, domain.SenderUser, messages[2].Sender)
	require.Equal(t, domain.SenderBot, messages[3].Sender)
}

func TestAppendExchange_RejectsPartialPairs(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	require.Error(t, repo.AppendExchange(ctx, 1, "", "reply"))
	require.Error(t, repo.AppendExchange(ctx, 1, "query", ""))
	require.Error(t, repo.AppendExchange(ctx, 0, "query", "reply"))

	messages, err := repo.FindByChatID(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestFindByChatID_EmptyChat(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	messages, err := repo.FindByChatID(context.Background(), 42)
	require.NoError(t, err)
	require.Empty(t, messages)
}
