// Package ai generates replies for AI contacts using the Gemini REST API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/neochat/neochat/internal/chat"
	"github.com/neochat/neochat/internal/errors"
	"github.com/neochat/neochat/internal/logger"
)

const (
	geminiAPIBase     = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel       = "gemini-2.5-flash"
	geminiAPIKeyEnv   = "GEMINI_API_KEY"
	geminiHTTPTimeout = 30 * time.Second
)

// AudioPlaceholder stands in for audio messages in the prompt, since only
// text is sent upstream.
const AudioPlaceholder = "[Audio message]"

// ImagePlaceholder stands in for image messages in the prompt.
const ImagePlaceholder = "[Image]"

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	httpClient *http.Client
	apiBase    string // Override for testing; defaults to geminiAPIBase
	model      string
	apiKey     func() string // Deferred so the env var is read per request
}

// NewClient creates a Gemini client reading the API key from GEMINI_API_KEY.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: geminiHTTPTimeout,
		},
		apiBase: geminiAPIBase,
		model:   geminiModel,
		apiKey:  func() string { return os.Getenv(geminiAPIKeyEnv) },
	}
}

// NewClientWithBase creates a Gemini client with a custom HTTP client, API
// base URL, and API key (for testing).
func NewClientWithBase(client *http.Client, apiBase, apiKey string) *Client {
	if apiBase == "" {
		apiBase = geminiAPIBase
	}
	return &Client{
		httpClient: client,
		apiBase:    apiBase,
		model:      geminiModel,
		apiKey:     func() string { return apiKey },
	}
}

// geminiPart is a single piece of content.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiContent is one conversation turn.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate produces a reply from the contact given the conversation history.
// The user's messages map to the "user" role and the contact's to "model".
// Returns a KindConfig error when no API key is configured.
func (c *Client) Generate(ctx context.Context, contact chat.Contact, history []chat.Message) (string, error) {
	key := c.apiKey()
	if key == "" {
		return "", errors.APIKeyMissing()
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt(contact)}},
		},
		Contents: promptContents(history),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.GenerateFailed(contact.ID, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.apiBase, c.model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.GenerateFailed(contact.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("AI: Requesting reply for %s (%d turns)", contact.ID, len(reqBody.Contents))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.GenerateFailed(contact.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.GenerateFailed(contact.ID,
			fmt.Errorf("Gemini API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", errors.GenerateFailed(contact.ID, err)
	}

	if len(genResp.Candidates) == 0 {
		return "", errors.GenerateFailed(contact.ID, fmt.Errorf("Gemini API returned no candidates"))
	}

	var sb strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.GenerateFailed(contact.ID, fmt.Errorf("Gemini API returned an empty reply"))
	}

	logger.Debug("AI: Got reply for %s (%d chars)", contact.ID, len(text))
	return text, nil
}

// promptContents converts the conversation history to Gemini turns.
// Media messages without text become placeholders so the model still sees
// that something was sent.
func promptContents(history []chat.Message) []geminiContent {
	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		role := "model"
		if msg.FromSelf() {
			role = "user"
		}

		text := msg.Body
		if text == "" {
			switch msg.Kind {
			case chat.KindAudio:
				text = AudioPlaceholder
			case chat.KindImage:
				text = ImagePlaceholder
			default:
				continue
			}
		}

		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: text}},
		})
	}
	return contents
}

// systemPrompt builds the persona instruction for the contact.
func systemPrompt(contact chat.Contact) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, chatting in a casual messaging app.", contact.Name)
	if contact.About != "" {
		fmt.Fprintf(&sb, " %s.", strings.TrimSuffix(contact.About, "."))
	}
	sb.WriteString(" Keep replies short and conversational, like text messages. Do not use markdown headings.")
	return sb.String()
}
