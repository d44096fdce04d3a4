package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/edenlum/PokerLLM/internal/game"
)

// systemPrompt frames the task for the model. The reply contract is a
// single ACTION line so parsing stays trivial; everything before it is
// treated as free-form reasoning and ignored.
const systemPrompt = `You are playing no-limit Texas Hold'em. You will be given the full hand history and your legal actions. Think as much as you like, then end your reply with exactly one line of the form:

ACTION: <action> [amount]

where <action> is one of the listed legal actions. For bet and raise, the amount is the TOTAL you are committing this street, e.g. "ACTION: raise 40". For fold, check and call give no amount.`

// LLMConfig configures the model client.
type LLMConfig struct {
	BaseURL     string  // e.g. https://api.openai.com/v1
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// LLM asks an OpenAI-compatible chat completions endpoint for
// decisions. It performs exactly one request per Decide call; retrying
// a bad answer is the job of the Validating wrapper, which re-issues
// the request with the rejection reason appended.
type LLM struct {
	cfg        LLMConfig
	httpClient *http.Client
	clock      quartz.Clock
	logger     *log.Logger
}

// NewLLM creates a model-backed agent. A nil clock means real time.
func NewLLM(cfg LLMConfig, logger *log.Logger, clock quartz.Clock) *LLM {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &LLM{
		cfg:        cfg,
		httpClient: &http.Client{},
		clock:      clock,
		logger:     logger.WithPrefix("llm").With("model", cfg.Model),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Decide implements game.Agent.
func (l *LLM) Decide(req game.DecisionRequest) (game.Decision, error) {
	reply, err := l.complete(req.History)
	if err != nil {
		return game.Decision{}, err
	}

	d, err := parseReply(reply)
	if err != nil {
		l.logger.Warn("unparseable model reply", "reply", truncate(reply, 200), "error", err)
		return game.Decision{}, err
	}

	l.logger.Debug("model decision", "action", d.Action, "amount", d.Amount)
	return d, nil
}

func (l *LLM) complete(prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: l.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: l.cfg.Temperature,
		MaxTokens:   l.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := l.clock.AfterFunc(l.cfg.Timeout, cancel)
	defer timer.Stop()

	url := strings.TrimRight(l.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if l.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+l.cfg.APIKey)
	}

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode chat completion response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat completion API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseReply extracts the decision from a model reply. The last ACTION
// line wins, so models that restate the format while reasoning are
// still parsed correctly.
func parseReply(reply string) (game.Decision, error) {
	var actionLine string
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := cutPrefixFold(trimmed, "ACTION:"); ok {
			actionLine = strings.TrimSpace(rest)
		}
	}
	if actionLine == "" {
		return game.Decision{}, fmt.Errorf("no ACTION line in reply")
	}

	fields := strings.Fields(actionLine)
	action, err := game.ParseAction(strings.ToLower(fields[0]))
	if err != nil {
		return game.Decision{}, err
	}

	d := game.Decision{Action: action}
	if len(fields) > 1 {
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return game.Decision{}, fmt.Errorf("bad amount %q: %w", fields[1], err)
		}
		d.Amount = amount
	}
	return d, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
