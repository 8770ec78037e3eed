// ABOUTME: Conversation controller owning the ordered message transcript
// ABOUTME: Serializes query exchanges and threads the sticky conversation id

package conversation

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"campusbot/internal/client"
)

// Origin identifies who authored a message.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// Message is one transcript entry. Messages are append-only and never
// edited or removed once created.
type Message struct {
	ID     string
	Origin Origin
	Text   string
}

// FallbackReply is appended in place of a real answer when an exchange
// fails, so every submitted query has a paired reply.
const FallbackReply = "Sorry, I encountered an error. Please try again."

var (
	// ErrEmptyQuery rejects blank or whitespace-only input.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrBusy rejects a submission while a prior query is outstanding.
	ErrBusy = errors.New("a query is already in flight")
	// ErrNotBusy guards completion calls with no matching Begin.
	ErrNotBusy = errors.New("no query in flight")
)

// Controller manages one logical conversation for the lifetime of the
// authenticated session. It holds no transport: the caller performs the
// network exchange between Begin and the matching Complete call, which
// keeps the transcript mutations on the single event loop.
type Controller struct {
	messages       []Message
	conversationID string
	busy           bool
}

// New creates a controller with the local greeting already appended.
// The greeting is synthesized client-side and never persisted.
func New(displayName string) *Controller {
	c := &Controller{}
	greeting := "Hi " + displayName + "! I'm your campus assistant. " +
		"Ask me anything about courses, departments, faculty, events, or campus locations!"
	c.append(OriginAssistant, greeting)
	return c
}

// Messages returns a copy of the transcript in append order.
func (c *Controller) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// ConversationID returns the backend-assigned conversation id, empty
// until the first successful exchange.
func (c *Controller) ConversationID() string {
	return c.conversationID
}

// Busy reports whether a query is outstanding.
func (c *Controller) Busy() bool {
	return c.busy
}

// Begin accepts a query for submission. The user message is appended
// immediately, before any network round-trip, so the transcript
// reflects intent even under latency. Blank input and re-entrant
// submission are rejected with no observable effect.
func (c *Controller) Begin(text string) (Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, ErrEmptyQuery
	}
	if c.busy {
		return Message{}, ErrBusy
	}
	c.busy = true
	return c.append(OriginUser, trimmed), nil
}

// CompleteSuccess records the backend's answer for the outstanding
// query. The returned conversation id is adopted verbatim and carried
// forward on every later exchange.
func (c *Controller) CompleteSuccess(result *client.QueryResult) (Message, error) {
	if !c.busy {
		return Message{}, ErrNotBusy
	}
	c.busy = false
	c.conversationID = result.ConversationID
	return c.append(OriginAssistant, result.Response), nil
}

// CompleteFailure records a failed exchange by appending the local
// fallback reply. A submitted query is never left without a reply.
func (c *Controller) CompleteFailure() (Message, error) {
	if !c.busy {
		return Message{}, ErrNotBusy
	}
	c.busy = false
	return c.append(OriginAssistant, FallbackReply), nil
}

func (c *Controller) append(origin Origin, text string) Message {
	msg := Message{
		ID:     uuid.NewString(),
		Origin: origin,
		Text:   text,
	}
	c.messages = append(c.messages, msg)
	return msg
}
