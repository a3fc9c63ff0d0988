package service

import (
	"context"
	"testing"
	"time"

	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyKeywords(t *testing.T) {
	tests := []struct {
		input  string
		prefix string
	}{
		{"How much STOCK do we have?", "Based on your current inventory data"},
		{"show inventory", "Based on your current inventory data"},
		{"what should I reorder", "You currently have 23 items"},
		{"low items", "You currently have 23 items"},
		{"trend please", "Your inventory trends show"},
		{"give me an analysis", "Your inventory trends show"},
		{"help", "I can help you with:"},
		{"what now", "I can help you with:"},
		{"hello there", "I understand you're asking"},
		// earlier rules win
		{"what is low stock", "Based on your current inventory data"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Regexp(t, "^"+tt.prefix, Reply(tt.input))
		})
	}
}

func TestSendAppendsHistory(t *testing.T) {
	svc := NewChatService(0)

	h := svc.History("s1")
	require.Len(t, h, 1)
	assert.Equal(t, Greeting, h[0].Text)
	assert.Equal(t, model.SenderBot, h[0].Sender)

	reply, err := svc.Send(context.Background(), "s1", "any trend?")
	require.NoError(t, err)
	assert.Equal(t, model.SenderBot, reply.Sender)

	h = svc.History("s1")
	require.Len(t, h, 3)
	assert.Equal(t, "any trend?", h[1].Text)
	assert.Equal(t, model.SenderUser, h[1].Sender)
	assert.Equal(t, reply.ID, h[2].ID)

	assert.Len(t, svc.History("s2"), 1, "history is per session")

	svc.Forget("s1")
	assert.Len(t, svc.History("s1"), 1)
}

func TestSendRejectsEmpty(t *testing.T) {
	svc := NewChatService(0)
	_, err := svc.Send(context.Background(), "s1", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, svc.History("s1"), 1)
}

func TestSendDelayAndCancel(t *testing.T) {
	svc := NewChatService(30 * time.Millisecond)

	start := time.Now()
	_, err := svc.Send(context.Background(), "s1", "help")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	slow := NewChatService(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = slow.Send(ctx, "s1", "help")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Len(t, slow.History("s1"), 2, "user message kept, reply abandoned")
}

func TestForgetAbandonsPendingReply(t *testing.T) {
	svc := NewChatService(time.Hour)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(context.Background(), "s1", "stock?")
		done <- err
	}()

	require.Eventually(t, func() bool { return len(svc.History("s1")) == 2 }, time.Second, 5*time.Millisecond)
	svc.Forget("s1")

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	case <-time.After(time.Second):
		t.Fatal("reply still pending after Forget")
	}

	cs := svc.(*chatService)
	cs.mu.Lock()
	_, kept := cs.history["s1"]
	cs.mu.Unlock()
	assert.False(t, kept, "forgotten thread is not recreated")

	svc.Forget("never-opened")
}
