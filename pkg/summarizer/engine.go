package summarizer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"study-stream-be/internal/entity"
	"study-stream-be/internal/pkg/logger"
	"study-stream-be/pkg/llm"
)

// Statistics summarizes the measurable facts of a conversation.
type Statistics struct {
	DurationMinutes int
	Participants    []string
	MessageCount    int
	AttachmentCount int
}

// Engine turns a chat history into a human readable summary. The AI part is
// best effort: when the provider fails the statistics still make it out.
type Engine struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewEngine(provider llm.LLMProvider, logger logger.ILogger) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger,
	}
}

// ComputeStatistics derives duration, participant list and counts from an
// ordered message history. Participants keep their order of first appearance.
// Duration is the rounded minute span between first and last message, zero
// when fewer than two messages exist.
func ComputeStatistics(messages []entity.Message) Statistics {
	stats := Statistics{
		MessageCount: len(messages),
	}

	seen := make(map[string]struct{})
	for _, msg := range messages {
		stats.AttachmentCount += len(msg.Attachments)
		name := senderName(msg)
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			stats.Participants = append(stats.Participants, name)
		}
	}

	if len(messages) > 1 {
		span := messages[len(messages)-1].CreatedAt.Sub(messages[0].CreatedAt)
		stats.DurationMinutes = int(math.Round(span.Minutes()))
	}

	return stats
}

// Transcript renders the history as "name: content" lines for the model.
func Transcript(messages []entity.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", senderName(msg), msg.Content))
	}
	return strings.Join(lines, "\n")
}

func senderName(msg entity.Message) string {
	if msg.Sender != nil {
		return msg.Sender.Name
	}
	return "Unknown"
}

func buildPrompt(conversationText string, stats Statistics) string {
	return fmt.Sprintf(`Please create a comprehensive summary of the following chat conversation. Include key discussion points, main decisions or conclusions reached, and any important action items.

Chat Statistics:
- Duration: %d minutes
- Participants: %s
- Total Messages: %d
- Attachments Shared: %d

Conversation:
%s`,
		stats.DurationMinutes,
		strings.Join(stats.Participants, ", "),
		stats.MessageCount,
		stats.AttachmentCount,
		conversationText,
	)
}

// Summarize composes the final summary text for an ended room. The statistics
// header is always present; the AI section degrades to a fixed notice when the
// provider errors out.
func (e *Engine) Summarize(ctx context.Context, messages []entity.Message) (string, Statistics) {
	stats := ComputeStatistics(messages)

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	aiSummary, err := e.provider.Generate(ctx, buildPrompt(Transcript(messages), stats))
	if err != nil {
		e.logger.Warn("Summarizer", "AI summary generation failed, falling back to statistics only", map[string]interface{}{
			"error": err.Error(),
		})
		aiSummary = ""
	}

	var sb strings.Builder
	sb.WriteString("Chat Statistics:\n")
	sb.WriteString(fmt.Sprintf("- Duration: %d minutes\n", stats.DurationMinutes))
	sb.WriteString(fmt.Sprintf("- Participants (%d): %s\n", len(stats.Participants), strings.Join(stats.Participants, ", ")))
	sb.WriteString(fmt.Sprintf("- Total Messages: %d\n", stats.MessageCount))
	sb.WriteString(fmt.Sprintf("- Attachments Shared: %d\n\n", stats.AttachmentCount))

	if aiSummary != "" {
		sb.WriteString("AI-Generated Summary:\n")
		sb.WriteString(aiSummary)
	} else {
		sb.WriteString("AI summary generation failed. Please review the chat history manually.")
	}

	return sb.String(), stats
}
