package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/services"
)

func mustLang(t *testing.T, code string) language.Language {
	t.Helper()
	lang, err := language.Parse(code)
	if err != nil {
		t.Fatalf("Parse(%q): %v", code, err)
	}
	return lang
}

func noSleep(t *testing.T) func(context.Context, time.Duration) error {
	t.Helper()
	return func(context.Context, time.Duration) error { return nil }
}

func candidateBody(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestTranslateSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(candidateBody(`["Hola","Mundo"]`)))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Model: "gemini-2.0-flash", Endpoint: server.URL})
	out, err := client.Translate(context.Background(), []string{"Hello", "World"}, mustLang(t, "es"))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(out) != 2 || out[0] != "Hola" || out[1] != "Mundo" {
		t.Fatalf("unexpected translations: %v", out)
	}
	if gotPath != "/gemini-2.0-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotBody.GenerationConfig.ResponseMimeType != "application/json" {
		t.Errorf("response mime type = %q", gotBody.GenerationConfig.ResponseMimeType)
	}
	if len(gotBody.Contents) != 1 || !strings.Contains(gotBody.Contents[0].Parts[0].Text, "[1] Hello") {
		t.Errorf("prompt missing numbered lines: %+v", gotBody.Contents)
	}
	if len(gotBody.SystemInstruction.Parts) == 0 || gotBody.SystemInstruction.Parts[0].Text == "" {
		t.Errorf("system instruction missing")
	}
}

func TestTranslateStripsCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("```json\n[\"Bonjour\"]\n```")))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL})
	out, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "fr"))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(out) != 1 || out[0] != "Bonjour" {
		t.Fatalf("unexpected translations: %v", out)
	}
}

func TestTranslateAllLowercasesKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody(`{"ES":["Hola"],"fr":["Bonjour"]}`)))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL})
	targets := []language.Language{mustLang(t, "es"), mustLang(t, "fr")}
	out, err := client.TranslateAll(context.Background(), []string{"Hello"}, targets)
	if err != nil {
		t.Fatalf("TranslateAll: %v", err)
	}
	if got := out["es"]; len(got) != 1 || got[0] != "Hola" {
		t.Fatalf("es translations = %v", got)
	}
	if got := out["fr"]; len(got) != 1 || got[0] != "Bonjour" {
		t.Fatalf("fr translations = %v", got)
	}
}

func TestMissingAPIKeyFailsBeforeRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(Config{Endpoint: server.URL})
	_, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "es"))
	if !errors.Is(err, services.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if called {
		t.Fatal("request should not have been sent")
	}
}

func TestAuthFailureNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", Endpoint: server.URL}, WithSleeper(noSleep(t)))
	_, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "es"))
	if !errors.Is(err, services.ErrAuth) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected 1 request, got %d", requests)
	}
}

func TestRateLimitHonorsRetryAfter(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.Header().Set("Retry-After", "7")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(candidateBody(`["Hallo"]`)))
	}))
	defer server.Close()

	var delays []time.Duration
	sleeper := func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL}, WithSleeper(sleeper))
	out, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "de"))
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out[0] != "Hallo" {
		t.Fatalf("unexpected translation: %v", out)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
	if len(delays) != 1 || delays[0] != 7*time.Second {
		t.Fatalf("expected one 7s delay, got %v", delays)
	}
}

func TestTransientFailureBackoffDoubles(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(candidateBody(`["Ciao"]`)))
	}))
	defer server.Close()

	var delays []time.Duration
	sleeper := func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL},
		WithSleeper(sleeper),
		WithRetryBackoff(2*time.Second, 30*time.Second))
	if _, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "ko")); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v", delays)
	}
	for i, d := range want {
		if delays[i] != d {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], d)
		}
	}
}

func TestExhaustedRetriesReportRateLimit(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL},
		WithSleeper(noSleep(t)),
		WithRetryMaxAttempts(3))
	_, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "es"))
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests, got %d", requests)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error missing attempt count: %v", err)
	}
}

func TestBlockedPromptPermanent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL}, WithSleeper(noSleep(t)))
	_, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "es"))
	if err == nil || !strings.Contains(err.Error(), "blocked") {
		t.Fatalf("expected blocked prompt error, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected 1 request, got %d", requests)
	}
}

func TestNonStopFinishReasonPermanent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"partial"}]},"finishReason":"MAX_TOKENS"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", Endpoint: server.URL}, WithSleeper(noSleep(t)))
	_, err := client.Translate(context.Background(), []string{"Hello"}, mustLang(t, "es"))
	if err == nil || !strings.Contains(err.Error(), "MAX_TOKENS") {
		t.Fatalf("expected finish reason error, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected 1 request, got %d", requests)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
		ok    bool
	}{
		{name: "empty", value: "", want: 0, ok: false},
		{name: "seconds", value: "12", want: 12 * time.Second, ok: true},
		{name: "negative", value: "-1", want: 0, ok: false},
		{name: "garbage", value: "soon", want: 0, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRetryAfter(tt.value)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("parseRetryAfter(%q) = %v, %v; want %v, %v", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBackoffDelayCapped(t *testing.T) {
	client := NewClient(Config{APIKey: "k"}, WithRetryBackoff(2*time.Second, 30*time.Second))
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{6, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := client.backoffDelay(tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
