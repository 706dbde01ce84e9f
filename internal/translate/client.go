// Package translate is the translation collaborator: it renders the base
// prompt into a fixed, ordered list of target languages via a
// Google-Translate-compatible endpoint.
package translate

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Language pairs a translation target code with its English name.
type Language struct {
	Code string
	Name string
}

// TopLanguages is the fixed translation target list. Its order is the
// insertion order of every downstream mapping and is preserved end-to-end
// so reports stay stable.
var TopLanguages = []Language{
	{"en", "English"},
	{"zh-CN", "Chinese (Mandarin)"},
	{"hi", "Hindi"},
	{"es", "Spanish"},
	{"ar", "Arabic"},
	{"bn", "Bengali"},
	{"fr", "French"},
	{"ru", "Russian"},
	{"pt", "Portuguese"},
	{"ur", "Urdu"},
	{"id", "Indonesian"},
	{"de", "German"},
	{"ja", "Japanese"},
	{"sw", "Swahili"},
	{"tr", "Turkish"},
	{"vi", "Vietnamese"},
	{"ko", "Korean"},
	{"ta", "Tamil"},
	{"mr", "Marathi"},
	{"fa", "Persian"},
}

// Codes returns the target language codes in canonical order.
func Codes() []string {
	codes := make([]string, len(TopLanguages))
	for i, lang := range TopLanguages {
		codes[i] = lang.Code
	}
	return codes
}

// Client calls a Google-Translate-compatible endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client from environment variables.
func NewClient() *Client {
	return &Client{
		BaseURL: getEnvOr("TRANSLATE_URL", "https://translate.googleapis.com"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Translate translates English text into the target language.
func (c *Client) Translate(text, target string) (string, error) {
	endpoint := fmt.Sprintf("%s/translate_a/single?client=gtx&sl=en&tl=%s&dt=t&q=%s",
		strings.TrimSuffix(c.BaseURL, "/"), url.QueryEscape(target), url.QueryEscape(text))

	resp, err := c.HTTP.Get(endpoint)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return parseTranslation(body)
}

// parseTranslation decodes the gtx response shape: a nested array whose
// first element holds [translated, original, ...] segments.
func parseTranslation(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("parse translation response: %w", err)
	}
	if len(root) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return "", fmt.Errorf("parse translation segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no translated text in response")
	}
	return sb.String(), nil
}

// TranslateAll translates the prompt into every target language, in order.
// A failed language is recorded as absent (nil) and never aborts the run.
func (c *Client) TranslateAll(prompt string) map[string]*string {
	out := make(map[string]*string, len(TopLanguages))
	for _, lang := range TopLanguages {
		translated, err := c.Translate(prompt, lang.Code)
		if err != nil {
			log.Printf("[translate] %s (%s) failed: %v", lang.Code, lang.Name, err)
			out[lang.Code] = nil
			continue
		}
		out[lang.Code] = &translated
	}
	return out
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
