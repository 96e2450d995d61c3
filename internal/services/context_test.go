package services_test

import (
	"context"
	"testing"

	"subtrans/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-42")
	ctx = services.WithLanguage(ctx, "ko")
	ctx = services.WithProvider(ctx, "gemini")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-42" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if code, ok := services.LanguageFromContext(ctx); !ok || code != "ko" {
		t.Fatalf("unexpected language: %v %v", code, ok)
	}
	if name, ok := services.ProviderFromContext(ctx); !ok || name != "gemini" {
		t.Fatalf("unexpected provider: %v %v", name, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithLanguage(ctx, "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.LanguageFromContext(ctx); ok {
		t.Fatal("expected no language value")
	}
}
