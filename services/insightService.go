package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/adithyapradeep05/kibi-cruz-sub000/models"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com/v1/messages"
	anthropicModel      = "claude-sonnet-4-20250514"
	anthropicVersion    = "2023-06-01"
	anthropicMaxRetries = 3
	anthropicInitDelay  = 2 * time.Second
	maxExcerptLen       = 300
	maxExcerpts         = 5
	maxKeywords         = 10
)

// UsageStats is the statistics payload sent alongside the insight prompt.
type UsageStats struct {
	TotalSessions     int            `json:"total_sessions"`
	TotalFocusSeconds int            `json:"total_focus_seconds"`
	SessionsByWeekday map[string]int `json:"sessions_by_weekday"`
	SessionsByDaypart map[string]int `json:"sessions_by_daypart"`
	SessionsByPhase   map[string]int `json:"sessions_by_phase"`
	TopKeywords       []KeywordCount `json:"top_keywords"`
	RecentExcerpts    []string       `json:"recent_excerpts"`
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// InsightSection is one card-sized chunk of the generated insight, split on
// the emoji heading markers the client lays out as cards.
type InsightSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"was": {}, "were": {}, "have": {}, "has": {}, "had": {}, "from": {},
	"then": {}, "some": {}, "more": {}, "into": {}, "about": {}, "just": {},
	"did": {}, "done": {}, "got": {}, "out": {}, "all": {}, "but": {},
	"not": {}, "work": {}, "worked": {}, "working": {}, "today": {}, "session": {},
}

func daypart(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

// BuildUsageStats aggregates the log set into the payload the insight prompt
// is rendered from.
func BuildUsageStats(logs []models.SessionLog) UsageStats {
	stats := UsageStats{
		SessionsByWeekday: map[string]int{},
		SessionsByDaypart: map[string]int{},
		SessionsByPhase:   map[string]int{},
	}

	counts := map[string]int{}
	for _, l := range logs {
		stats.TotalSessions++
		if l.Phase == models.PhaseWork {
			stats.TotalFocusSeconds += l.Duration
		}
		stats.SessionsByWeekday[l.StartTime.Weekday().String()]++
		stats.SessionsByDaypart[daypart(l.StartTime.Hour())]++
		stats.SessionsByPhase[l.Phase]++

		for _, w := range strings.Fields(strings.ToLower(l.Content)) {
			w = strings.Trim(w, ".,!?;:'\"()[]")
			if len(w) < 3 {
				continue
			}
			if _, skip := stopwords[w]; skip {
				continue
			}
			counts[w]++
		}
	}

	for w, n := range counts {
		stats.TopKeywords = append(stats.TopKeywords, KeywordCount{Word: w, Count: n})
	}
	sort.Slice(stats.TopKeywords, func(i, j int) bool {
		if stats.TopKeywords[i].Count != stats.TopKeywords[j].Count {
			return stats.TopKeywords[i].Count > stats.TopKeywords[j].Count
		}
		return stats.TopKeywords[i].Word < stats.TopKeywords[j].Word
	})
	if len(stats.TopKeywords) > maxKeywords {
		stats.TopKeywords = stats.TopKeywords[:maxKeywords]
	}

	for i := len(logs) - 1; i >= 0 && len(stats.RecentExcerpts) < maxExcerpts; i-- {
		content := strings.TrimSpace(logs[i].Content)
		if content == "" {
			continue
		}
		if len(content) > maxExcerptLen {
			content = content[:maxExcerptLen] + "…"
		}
		stats.RecentExcerpts = append(stats.RecentExcerpts, content)
	}

	return stats
}

// BuildInsightPrompt renders the stats payload into the natural-language
// prompt forwarded to the model. The emoji headings it requests are the
// section markers the client splits on — a string contract, keep in sync
// with SplitSections.
func BuildInsightPrompt(stats UsageStats) string {
	payload, _ := json.MarshalIndent(stats, "", "  ")

	var b strings.Builder
	b.WriteString("You are a productivity coach reviewing a user's focus-timer history.\n")
	b.WriteString("Based on the usage statistics below, write a short markdown insight with exactly these sections,\n")
	b.WriteString("each starting with its emoji heading on its own line:\n")
	b.WriteString("🎯 Focus patterns\n📈 Trends\n💡 Suggestions\n🔥 Streak outlook\n⚡ Quick win\n\n")
	b.WriteString("Keep each section to two or three sentences. Usage statistics:\n\n")
	b.Write(payload)
	return b.String()
}

// sectionMarkers are the emoji headings the UI splits the insight on.
var sectionMarkers = []string{"🎯", "📈", "💡", "🔥", "⚡"}

// SplitSections splits the generated markdown on the known emoji headings so
// the client can render separate cards. Text before the first marker is
// returned as a heading-less preamble section.
func SplitSections(text string) []InsightSection {
	var sections []InsightSection
	current := InsightSection{}
	var body strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(body.String())
		if current.Heading != "" || trimmed != "" {
			current.Body = trimmed
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		marked := ""
		for _, m := range sectionMarkers {
			if strings.HasPrefix(strings.TrimSpace(line), m) {
				marked = strings.TrimSpace(line)
				break
			}
		}
		if marked != "" {
			flush()
			current = InsightSection{Heading: marked}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()
	return sections
}

// AnthropicClient calls the Anthropic Messages API, playing the server-side
// proxy role so the API key never reaches the browser.
type AnthropicClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey:  apiKey,
		baseURL: anthropicBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate sends the prompt and returns the raw markdown reply, retrying
// rate limits and server errors with exponential backoff.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	req := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: 1024,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < anthropicMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * anthropicInitDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("x-api-key", c.apiKey)
		httpReq.Header.Set("anthropic-version", anthropicVersion)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, string(respBody))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return "", lastErr
		}

		var apiResp anthropicResponse
		if err := json.Unmarshal(respBody, &apiResp); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(apiResp.Content) == 0 {
			return "", fmt.Errorf("empty response content")
		}

		var text strings.Builder
		for _, block := range apiResp.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}
		return text.String(), nil
	}

	return "", lastErr
}

// InsightResult is what the insight endpoint returns: the raw markdown, the
// pre-split cards, and the stats that produced them.
type InsightResult struct {
	Text     string           `json:"text"`
	Sections []InsightSection `json:"sections"`
	Stats    UsageStats       `json:"stats"`
}

const insightUnavailable = "AI insights are unavailable right now. Your sessions are still being logged — try again later."

// GenerateInsight builds the stats payload for the user's log set, asks the
// model for the write-up, and splits it for card layout. Gateway failures
// degrade to a substituted user-visible message; no error escapes to callers.
func GenerateInsight(ctx context.Context, client *AnthropicClient, userID string) InsightResult {
	stats := BuildUsageStats(ListLogs(userID))
	text, err := client.Generate(ctx, BuildInsightPrompt(stats))
	if err != nil {
		log.Printf("insight generation failed: %v", err)
		return InsightResult{Text: insightUnavailable, Stats: stats}
	}
	return InsightResult{Text: text, Sections: SplitSections(text), Stats: stats}
}
