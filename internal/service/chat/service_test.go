package chat_test

import (
	"context"
	"testing"

	model "github.com/xmrt-ecosystem/eliza-chat/backend/internal/model/chat"
	chat "github.com/xmrt-ecosystem/eliza-chat/backend/internal/service/chat"
)

func TestServiceCreateSessionEmptyTranscript(t *testing.T) {
	svc := chat.NewService(16)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	turns, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty transcript, got %d turns", len(turns))
	}
}

func TestServiceEnsureSessionIdempotent(t *testing.T) {
	svc := chat.NewService(16)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if _, err := svc.AppendTurn(ctx, model.Turn{
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   "hi",
	}); err != nil {
		t.Fatalf("AppendTurn err: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.EnsureSession(ctx, session.ID); err != nil {
			t.Fatalf("EnsureSession err: %v", err)
		}
	}

	turns, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("EnsureSession reset transcript: got %d turns, want 1", len(turns))
	}
	if turns[0].Content != "hi" {
		t.Fatalf("unexpected content: %q", turns[0].Content)
	}
}

func TestServiceEnsureSessionCreatesUnknown(t *testing.T) {
	svc := chat.NewService(16)
	ctx := context.Background()

	session, err := svc.EnsureSession(ctx, "restored-session")
	if err != nil {
		t.Fatalf("EnsureSession err: %v", err)
	}
	if session.ID != "restored-session" {
		t.Fatalf("unexpected session ID: %s", session.ID)
	}

	turns, err := svc.Transcript(ctx, "restored-session")
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected fresh empty transcript, got %d turns", len(turns))
	}
}

func TestServiceAppendPreservesOrder(t *testing.T) {
	svc := chat.NewService(16)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	contents := []string{"first", "", "third"}
	for _, content := range contents {
		if _, err := svc.AppendTurn(ctx, model.Turn{
			SessionID: session.ID,
			Role:      model.RoleUser,
			Content:   content,
		}); err != nil {
			t.Fatalf("AppendTurn(%q) err: %v", content, err)
		}
	}

	turns, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(turns) != len(contents) {
		t.Fatalf("got %d turns, want %d", len(turns), len(contents))
	}
	for i, content := range contents {
		if turns[i].Content != content {
			t.Fatalf("turn %d: got %q, want %q", i, turns[i].Content, content)
		}
	}
}

func TestServiceTranscriptNotFound(t *testing.T) {
	svc := chat.NewService(16)
	ctx := context.Background()

	if _, err := svc.Transcript(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing session")
	}
	if _, err := svc.GetSession(ctx, "missing"); err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestServiceTranscriptReturnsCopy(t *testing.T) {
	svc := chat.NewService(16)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if _, err := svc.AppendTurn(ctx, model.Turn{
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   "original",
	}); err != nil {
		t.Fatalf("AppendTurn err: %v", err)
	}

	turns, _ := svc.Transcript(ctx, session.ID)
	turns[0].Content = "mutated"

	again, _ := svc.Transcript(ctx, session.ID)
	if again[0].Content != "original" {
		t.Fatalf("transcript mutated through returned slice: %q", again[0].Content)
	}
}
