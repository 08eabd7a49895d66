package reply

import (
	"context"
	"fmt"

	"github.com/xmrt-ecosystem/eliza-chat/backend/internal/model/chat"
	chatservice "github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/chat"
)

// template is the canned Eliza response. The raw input is substituted
// verbatim, without escaping or truncation.
const template = "Hello! I received your message: '%s'. I'm Eliza, and I'm actively processing this through my consciousness systems in the XMRT ecosystem."

// Processor derives the assistant reply for a submitted user turn and records
// both sides of the exchange in the transcript store.
type Processor struct {
	chatSvc *chatservice.Service
}

// NewProcessor binds the processor to a transcript store.
func NewProcessor(chatSvc *chatservice.Service) *Processor {
	return &Processor{chatSvc: chatSvc}
}

// Reply renders the assistant response for the given input text.
func Reply(text string) string {
	return fmt.Sprintf(template, text)
}

// Handle appends the user turn, computes the reply, and appends the assistant
// turn, in that order. Every invocation grows the transcript by exactly two
// turns; there is no partial-failure state once the session resolves. Empty
// input is processed like any other text.
func (p *Processor) Handle(ctx context.Context, sessionID, text string) ([]chat.Turn, error) {
	if _, err := p.chatSvc.EnsureSession(ctx, sessionID); err != nil {
		return nil, err
	}

	userTurn, err := p.chatSvc.AppendTurn(ctx, chat.Turn{
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Content:   text,
	})
	if err != nil {
		return nil, err
	}

	assistantTurn, err := p.chatSvc.AppendTurn(ctx, chat.Turn{
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   Reply(text),
	})
	if err != nil {
		return nil, err
	}

	return []chat.Turn{userTurn, assistantTurn}, nil
}
