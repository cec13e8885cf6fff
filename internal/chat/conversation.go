package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/models"
)

// ErrEmptyMessage is returned when the user sends only whitespace.
var ErrEmptyMessage = errors.New("message is empty")

// Conversation is the message history of the assistant chat, opened by a greeting.
type Conversation struct {
	responder Responder
	now       func() time.Time

	mu       sync.Mutex
	messages []*models.ChatMessage
}

// NewConversation starts a conversation greeted in lang.
func NewConversation(responder Responder, lang i18n.Language) *Conversation {
	c := &Conversation{responder: responder, now: time.Now}
	c.Clear(lang)
	return c
}

// Clear drops every message and greets again in lang.
func (c *Conversation) Clear(lang i18n.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = []*models.ChatMessage{c.message(models.RoleAssistant, Greeting(lang))}
}

// Send records the user message, asks the responder, and records and returns its reply.
// When the responder fails the user message stays in the history.
func (c *Conversation) Send(ctx context.Context, lang i18n.Language, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	c.mu.Lock()
	c.messages = append(c.messages, c.message(models.RoleUser, content))
	c.mu.Unlock()

	reply, err := c.responder.Reply(ctx, lang, content)
	if err != nil {
		return nil, fmt.Errorf("assistant reply: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	msg := c.message(models.RoleAssistant, reply)
	c.messages = append(c.messages, msg)
	return msg, nil
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []*models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.ChatMessage, len(c.messages))
	for i, m := range c.messages {
		cp := *m
		out[i] = &cp
	}
	return out
}

// Transcript renders the history as plain text, one message per block.
func (c *Conversation) Transcript(lang i18n.Language) string {
	var b strings.Builder
	for _, m := range c.Messages() {
		who := i18n.T(lang, "Assistant", "معاون")
		if m.Role == models.RoleUser {
			who = i18n.T(lang, "You", "آپ")
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n\n", m.Timestamp.Format("2006-01-02 15:04"), who, m.Content)
	}
	return b.String()
}

func (c *Conversation) message(role models.Role, content string) *models.ChatMessage {
	return &models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
	}
}
