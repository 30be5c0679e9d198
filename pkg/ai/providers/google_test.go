package providers

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"geminal/pkg/ai"
	"geminal/pkg/config"

	"google.golang.org/genai"
)

type stubGoogleModelsClient struct {
	generateResp *genai.GenerateContentResponse
	generateErr  error

	gotCtx      context.Context
	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (s *stubGoogleModelsClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.gotCtx = ctx
	s.gotModel = model
	s.gotContents = contents
	s.gotConfig = cfg
	return s.generateResp, s.generateErr
}

func googleTextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role: genai.RoleModel,
					Parts: []*genai.Part{
						{Text: text},
					},
				},
			},
		},
	}
}

func TestNewGoogleProvider_RequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = ""

	_, err := NewGoogleProvider(cfg)
	if err == nil {
		t.Fatal("Expected error when Google API key is missing")
	}
}

func TestNewGoogleProvider_DefaultFallbacks(t *testing.T) {
	origNewClient := newGoogleClient
	defer func() {
		newGoogleClient = origNewClient
	}()

	var gotClientCfg *genai.ClientConfig
	newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		gotClientCfg = cfg
		return &genai.Client{}, nil
	}

	cfg := config.Default()
	cfg.APIKey = "test-google-key"
	cfg.Model = "gemini-pro"
	cfg.Temperature = 0.55
	cfg.MaxTokens = 2048
	cfg.APITimeoutSeconds = 0

	provider, err := NewGoogleProvider(cfg)
	if err != nil {
		t.Fatalf("NewGoogleProvider() error: %v", err)
	}

	if gotClientCfg == nil {
		t.Fatal("Expected Google client config to be captured")
	}
	if gotClientCfg.APIKey != "test-google-key" {
		t.Fatalf("Expected API key to be forwarded, got %q", gotClientCfg.APIKey)
	}
	if gotClientCfg.Backend != genai.BackendGeminiAPI {
		t.Fatalf("Expected BackendGeminiAPI, got %q", gotClientCfg.Backend)
	}
	if provider.Model() != ai.DefaultModel {
		t.Fatalf("Expected unknown model to fall back to %q, got %q", ai.DefaultModel, provider.Model())
	}
	if provider.defaultTimeout != 60*time.Second {
		t.Fatalf("Expected default timeout 60s, got %s", provider.defaultTimeout)
	}
	if provider.defaultTemperature != 0.55 {
		t.Fatalf("Expected default temperature 0.55, got %f", provider.defaultTemperature)
	}
	if provider.defaultMaxTokens != 2048 {
		t.Fatalf("Expected default max tokens 2048, got %d", provider.defaultMaxTokens)
	}
}

func TestNewGoogleProvider_ClientError(t *testing.T) {
	origNewClient := newGoogleClient
	defer func() {
		newGoogleClient = origNewClient
	}()
	newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		return nil, errors.New("boom")
	}

	cfg := config.Default()
	cfg.APIKey = "key"
	if _, err := NewGoogleProvider(cfg); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Expected wrapped client error, got %v", err)
	}
}

func TestGoogleProvider_CreateChatCompletion_MapsMessages(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: googleTextResponse("ok"),
	}
	provider := &GoogleProvider{
		models:             stub,
		defaultModel:       "google-default",
		defaultTemperature: 0.7,
		defaultMaxTokens:   1024,
	}

	temp := 0.2
	maxTokens := 42
	resp, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: "system prompt"},
			{Role: "user", Content: "user prompt"},
			{Role: "model", Content: "model reply"},
			{Role: "assistant", Content: "assistant reply"},
			{Role: "tool", Content: "unknown role maps to user"},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}

	if resp.Content != "ok" {
		t.Fatalf("Expected response content %q, got %q", "ok", resp.Content)
	}
	if resp.Model != "google-default" {
		t.Fatalf("Expected response model %q, got %q", "google-default", resp.Model)
	}
	if stub.gotModel != "google-default" {
		t.Fatalf("Expected default model to be used, got %q", stub.gotModel)
	}
	if len(stub.gotContents) != 4 {
		t.Fatalf("Expected 4 non-system messages, got %d", len(stub.gotContents))
	}

	wantRoles := []string{"user", "model", "model", "user"}
	for i, want := range wantRoles {
		if string(stub.gotContents[i].Role) != want {
			t.Fatalf("Expected content %d role %q, got %q", i, want, stub.gotContents[i].Role)
		}
	}
	if stub.gotConfig == nil || stub.gotConfig.SystemInstruction == nil {
		t.Fatal("Expected system instruction to be set")
	}
	if got := stub.gotConfig.SystemInstruction.Parts[0].Text; got != "system prompt" {
		t.Fatalf("Expected system prompt, got %q", got)
	}
	if stub.gotConfig.ThinkingConfig == nil || stub.gotConfig.ThinkingConfig.IncludeThoughts {
		t.Fatal("Expected thoughts to be excluded")
	}
	if budget := stub.gotConfig.ThinkingConfig.ThinkingBudget; budget == nil || *budget != 0 {
		t.Fatalf("Expected thinking budget 0, got %v", budget)
	}
	if stub.gotConfig.Temperature == nil {
		t.Fatal("Expected temperature to be set")
	}
	if math.Abs(float64(*stub.gotConfig.Temperature)-0.2) > 0.0001 {
		t.Fatalf("Expected temperature override 0.2, got %f", *stub.gotConfig.Temperature)
	}
	if stub.gotConfig.MaxOutputTokens != 42 {
		t.Fatalf("Expected max output tokens 42, got %d", stub.gotConfig.MaxOutputTokens)
	}
}

func TestThinkingBudget(t *testing.T) {
	tests := []struct {
		model    string
		disabled bool
	}{
		{"gemini-2.5-flash", true},
		{"gemini-2.5-flash-lite", true},
		{"models/gemini-3-flash-preview", true},
		{"gemini-2.5-pro", false},
		{"models/gemini-2.5-pro", false},
	}

	for _, tt := range tests {
		budget := thinkingBudget(tt.model)
		if tt.disabled && (budget == nil || *budget != 0) {
			t.Errorf("thinkingBudget(%q) = %v, want 0", tt.model, budget)
		}
		if !tt.disabled && budget != nil {
			t.Errorf("thinkingBudget(%q) = %d, want nil", tt.model, *budget)
		}
	}
}

func TestGoogleProvider_CreateChatCompletion_FiltersThoughtParts(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Role: genai.RoleModel,
						Parts: []*genai.Part{
							{Text: "internal", Thought: true},
							{Text: "visible answer"},
						},
					},
				},
			},
		},
	}
	provider := &GoogleProvider{
		models:       stub,
		defaultModel: "google-default",
	}

	resp, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}
	if resp.Content != "visible answer" {
		t.Fatalf("Expected thought parts to be filtered, got %q", resp.Content)
	}
}

func TestGoogleProvider_CreateChatCompletion_Errors(t *testing.T) {
	callErr := errors.New("503 unavailable")
	provider := &GoogleProvider{
		models:       &stubGoogleModelsClient{generateErr: callErr},
		defaultModel: "google-default",
	}

	_, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	})
	if !errors.Is(err, callErr) {
		t.Fatalf("Expected transport error to be returned, got %v", err)
	}

	_, err = provider.CreateChatCompletion(context.Background(), ai.ChatRequest{})
	if err == nil {
		t.Fatal("Expected error for empty message list")
	}

	_, err = provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "system", Content: "only system"}},
	})
	if err == nil {
		t.Fatal("Expected error when only system messages are given")
	}
}

func TestGoogleProvider_CreateChatCompletion_EmptyReply(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReasonSafety,
			},
		},
	}
	provider := &GoogleProvider{models: stub, defaultModel: "google-default"}

	_, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("Expected error for empty reply")
	}
	if !strings.Contains(err.Error(), "prompt blocked") {
		t.Fatalf("Expected block reason in error, got %v", err)
	}
}

func TestGoogleProvider_WithTimeout(t *testing.T) {
	stub := &stubGoogleModelsClient{generateResp: googleTextResponse("ok")}
	provider := &GoogleProvider{
		models:         stub,
		defaultModel:   "google-default",
		defaultTimeout: 5 * time.Second,
	}

	if _, err := provider.CreateChatCompletion(context.Background(), ai.ChatRequest{
		Messages: []ai.Message{{Role: "user", Content: "hello"}},
	}); err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}
	if _, ok := stub.gotCtx.Deadline(); !ok {
		t.Fatal("Expected default timeout to set a deadline")
	}
}
