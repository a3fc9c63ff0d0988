package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-inventory-dashboard/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrEmptyMessage = errors.New("message is empty")

const Greeting = "Hello! I'm your AI inventory assistant. I can help you with stock levels, trends, recommendations, and answer any questions about your inventory. How can I assist you today?"

// replies are checked in order; the first rule with a matching keyword wins.
var replies = []struct {
	keywords []string
	text     string
}{
	{
		keywords: []string{"stock", "inventory"},
		text:     "Based on your current inventory data, you have 2,847 total items with 23 items running low on stock. Electronics category has the highest inventory levels at 450 items. Would you like me to provide more specific details about any category?",
	},
	{
		keywords: []string{"low", "reorder"},
		text:     "You currently have 23 items that are below the minimum stock threshold. The main categories needing attention are: Electronics (keyboards, mice), Clothing (belts, hats), and Home & Garden (outdoor items, storage). Would you like me to generate reorder recommendations?",
	},
	{
		keywords: []string{"trend", "analysis"},
		text:     "Your inventory trends show a positive growth of 12% this month. Electronics and Home & Garden categories are performing well, while Sports equipment shows steady demand. In-transit items have increased by 24%, indicating good supply chain flow.",
	},
	{
		keywords: []string{"help", "what"},
		text:     "I can help you with: \n• Stock level inquiries\n• Reorder recommendations\n• Inventory trend analysis\n• Category-specific insights\n• Supply chain status\n• Demand forecasting\n\nWhat specific area would you like to explore?",
	},
}

const defaultReply = "I understand you're asking about inventory management. Could you be more specific? I can help with stock levels, reorder suggestions, trend analysis, or any other inventory-related questions."

// Reply picks the canned answer for input.
func Reply(input string) string {
	lower := strings.ToLower(input)
	for _, r := range replies {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.text
			}
		}
	}
	return defaultReply
}

type ChatService interface {
	History(sessionID string) []model.ChatMessage
	Send(ctx context.Context, sessionID, text string) (*model.ChatMessage, error)
	Forget(sessionID string)
}

type chatService struct {
	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	history map[string]*chatThread
}

type chatThread struct {
	messages []model.ChatMessage
	// closed by Forget; pending replies give up
	forgotten chan struct{}
}

func NewChatService(delay time.Duration) ChatService {
	return &chatService{delay: delay, now: time.Now, history: make(map[string]*chatThread)}
}

// History starts with the assistant greeting.
func (s *chatService) History(sessionID string) []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ChatMessage(nil), s.thread(sessionID).messages...)
}

// Send records the user message and, after the reply delay, the assistant
// answer, which it returns. The answer is abandoned if ctx ends or the
// session is forgotten first.
func (s *chatService) Send(ctx context.Context, sessionID, text string) (*model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	th := s.thread(sessionID)
	th.messages = append(th.messages, s.message(text, model.SenderUser))
	s.mu.Unlock()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "reply abandoned")
		case <-th.forgotten:
			return nil, errors.Wrapf(ErrSessionNotFound, "%s", sessionID)
		case <-timer.C:
		}
	}

	reply := s.message(Reply(text), model.SenderBot)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history[sessionID] != th {
		return nil, errors.Wrapf(ErrSessionNotFound, "%s", sessionID)
	}
	th.messages = append(th.messages, reply)
	return &reply, nil
}

func (s *chatService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if th, ok := s.history[sessionID]; ok {
		close(th.forgotten)
		delete(s.history, sessionID)
	}
}

func (s *chatService) message(text string, sender model.Sender) model.ChatMessage {
	return model.ChatMessage{ID: uuid.New(), Text: text, Sender: sender, Timestamp: s.now()}
}

// thread requires s.mu.
func (s *chatService) thread(sessionID string) *chatThread {
	th, ok := s.history[sessionID]
	if !ok {
		th = &chatThread{
			messages:  []model.ChatMessage{s.message(Greeting, model.SenderBot)},
			forgotten: make(chan struct{}),
		}
		s.history[sessionID] = th
	}
	return th
}
