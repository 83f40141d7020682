package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client léger pour l'API conversations de Mistral via un Agent.
// Une seule réponse texte par appel, pas de streaming.

const (
	defaultBaseURL     = "https://api.mistral.ai"
	conversationPath   = "/v1/conversations"
	defaultHTTPTimeout = 60 * time.Second
)

type Client struct {
	apiKey  string
	agentID string
	baseURL string
	http    *http.Client
}

// NewClient construit un client à partir de credentials injectés.
// Jamais de clé en dur : la config les lit depuis l'environnement.
func NewClient(apiKey, agentID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		agentID: agentID,
		baseURL: baseURL,
		http: &http.Client{
			// Les analyses de texte long peuvent prendre du temps,
			// on laisse une marge confortable avant le timeout.
			Timeout: defaultHTTPTimeout,
		},
	}
}

// Enabled indique si les credentials nécessaires sont présents.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != "" && c.agentID != ""
}

type ConversationRequest struct {
	AgentID string `json:"agent_id"`
	Inputs  string `json:"inputs"`
}

type ConversationResponse struct {
	ID      string               `json:"id"`
	Object  string               `json:"object"`
	Status  string               `json:"status"`
	Message ConversationPiece    `json:"message"`
	Outputs []ConversationOutput `json:"outputs"`
	Output  any                  `json:"output"`
}

type ConversationPiece struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type ConversationOutput struct {
	ID      string              `json:"id"`
	Object  string              `json:"object"`
	Role    string              `json:"role"`
	Content []ConversationChunk `json:"content"`
}

type ConversationChunk struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendConversation soumet un prompt à l'agent et attend la réponse complète.
func (c *Client) SendConversation(ctx context.Context, prompt string) (*ConversationResponse, error) {
	if !c.Enabled() {
		return nil, errors.New("mistral non configuré")
	}
	payload := ConversationRequest{
		AgentID: c.agentID,
		Inputs:  prompt,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+conversationPath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// 429 inclus : le rate-limiting est retryable côté appelant.
		return nil, fmt.Errorf("mistral conversation status %d", resp.StatusCode)
	}

	var out ConversationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FirstText extrait le premier texte exploitable de la réponse, quel que
// soit le format retourné par l'API.
func (r *ConversationResponse) FirstText() string {
	if r == nil {
		return ""
	}
	if r.Message.Content != "" {
		return r.Message.Content
	}
	for _, out := range r.Outputs {
		for _, chunk := range out.Content {
			if chunk.Text != "" {
				return chunk.Text
			}
		}
	}
	if text, ok := r.Output.(string); ok && text != "" {
		return text
	}
	return ""
}
