package services_test

import (
	"strings"
	"testing"

	"subtrans/internal/services"
)

func TestDecodeModelJSON(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    []string
		wantErr bool
	}{
		{"plain array", `["a", "b"]`, []string{"a", "b"}, false},
		{"code fence", "```json\n[\"a\", \"b\"]\n```", []string{"a", "b"}, false},
		{"bare fence", "```\n[\"a\"]\n```", []string{"a"}, false},
		{"prose wrapped", `Here are the translations: ["a", "b"] as requested.`, []string{"a", "b"}, false},
		{"empty", "", nil, true},
		{"no json", "sorry, I cannot help", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			err := services.DecodeModelJSON(tc.payload, &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeModelJSON returned error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestDecodeModelJSONObject(t *testing.T) {
	var got map[string][]string
	payload := "```json\n{\"en\": [\"hello\"], \"ko\": [\"안녕\"]}\n```"
	if err := services.DecodeModelJSON(payload, &got); err != nil {
		t.Fatalf("DecodeModelJSON returned error: %v", err)
	}
	if got["en"][0] != "hello" || got["ko"][0] != "안녕" {
		t.Fatalf("unexpected decode result %v", got)
	}
}

func TestPayloadSnippetTruncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	snippet := services.PayloadSnippet(long)
	if len([]rune(snippet)) > 170 {
		t.Fatalf("snippet too long: %d runes", len([]rune(snippet)))
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Fatalf("expected truncation marker, got %q", snippet)
	}
	if services.PayloadSnippet("  ") != "<empty>" {
		t.Fatal("expected <empty> for blank content")
	}
}
