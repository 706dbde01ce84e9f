// Package llm is the inference collaborator: a client for an
// Ollama-compatible generation endpoint.
package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// systemPrompt steers the model toward fenced code-only answers.
const systemPrompt = "You are a code generator. Always respond with only the code " +
	"in a Python fenced code block. No explanation. No thinking steps."

// strictSystemPrompt is the harder instruction used for the single retry
// after an empty extraction.
const strictSystemPrompt = "You are a code generator. Output ONLY valid Python code " +
	"inside a single fenced code block. Do not include any text, explanation, or " +
	"reasoning outside the code block."

// Client posts generation requests to an Ollama-compatible endpoint.
type Client struct {
	BaseURL string
	Model   string
	HTTP    *http.Client
}

// NewClient creates a client from environment variables.
func NewClient() *Client {
	return &Client{
		BaseURL: getEnvOr("OLLAMA_URL", "http://localhost:11434"),
		Model:   getEnvOr("MODEL", "qwen3:30b-a3b"),
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

// NewClientWith creates a client with explicit parameters.
func NewClientWith(baseURL, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate requests a completion for prompt and returns the raw response
// text. strict selects the harder system instruction used for the single
// extraction retry.
func (c *Client) Generate(prompt string, strict bool) (string, error) {
	system := systemPrompt
	if strict {
		system = strictSystemPrompt
	}
	req := generateRequest{
		Model:  c.Model,
		Prompt: prompt,
		System: system,
	}

	body, err := c.post("/api/generate", req)
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse generate response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("API error: %s", resp.Error)
	}
	return resp.Response, nil
}

func (c *Client) post(path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.BaseURL, "/") + path
	req, err := http.NewRequest("POST", url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
