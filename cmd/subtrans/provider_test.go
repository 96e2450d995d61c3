package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/testsupport"
	"subtrans/internal/translate"
)

func TestNewProviderBuildsConfiguredClient(t *testing.T) {
	for _, name := range []string{"gemini", "openai"} {
		t.Run(name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithProvider(name))
			providerCfg, err := cfg.SelectedProvider("", "", "")
			if err != nil {
				t.Fatalf("SelectedProvider returned error: %v", err)
			}
			provider, err := newProvider(providerCfg, cfg.Translation, logging.NewNop())
			if err != nil {
				t.Fatalf("newProvider returned error: %v", err)
			}
			if provider.Name() != name {
				t.Fatalf("provider name = %q, want %q", provider.Name(), name)
			}
		})
	}
}

func TestSelectedProviderRejectsUnknownName(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithProvider("deepl"))
	_, err := cfg.SelectedProvider("", "", "")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), `unknown provider "deepl"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValuesFlowIntoRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "translated")
	cfg := testsupport.NewConfig(t,
		testsupport.WithMode("simultaneous"),
		testsupport.WithOutputDir(outDir),
		testsupport.WithTokenWarnThreshold(1),
	)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	mode, err := translate.ParseMode(cfg.Translation.Mode)
	if err != nil {
		t.Fatalf("ParseMode returned error: %v", err)
	}
	if mode != translate.ModeSimultaneous {
		t.Fatalf("mode = %q, want simultaneous", mode)
	}

	input := testsupport.WriteSubFile(t, t.TempDir(), "movie.sub", "")
	langs, err := language.ParseSet("es")
	if err != nil {
		t.Fatalf("ParseSet returned error: %v", err)
	}

	stub := &stubProvider{}
	svc := translate.NewService(stub, logging.NewNop(),
		translate.WithTokenWarnThreshold(cfg.Translation.TokenWarnThreshold))
	summary, err := svc.Run(context.Background(), translate.Request{
		InputPath: input,
		Languages: langs,
		Mode:      mode,
		OutputDir: cfg.Output.Directory,
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !summary.TokenWarning {
		t.Fatal("expected token warning with threshold 1")
	}
	if stub.combined != 1 {
		t.Fatalf("expected a single combined call, got %d", stub.combined)
	}
	if filepath.Dir(summary.Outcomes[0].OutputPath) != outDir {
		t.Fatalf("output written to %q, want directory %q", summary.Outcomes[0].OutputPath, outDir)
	}
}
