package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"danawise/internal/ai"
	"danawise/internal/money"
	"danawise/internal/store"
)

const chatGroundingLimit = 20

// Greeting is the canned assistant opener seeded into every conversation.
const Greeting = "Hi! I'm Dana, your AI financial assistant. I can help you analyze spending patterns, track income and expenses, and find ways to improve your financial health. What can I do for you today?"

type ChatGenerator interface {
	Chat(ctx context.Context, system, greeting string, history []ai.Message, message string) (<-chan ai.Chunk, error)
}

type ChatTransactionStore interface {
	RecentWithCategory(ctx context.Context, userID string, limit int) ([]store.GroundingRow, error)
}

// ChatService grounds a conversation in the user's recent transactions and
// relays the provider's token stream.
type ChatService struct {
	transactions ChatTransactionStore
	generator    ChatGenerator
}

func NewChatService(transactions ChatTransactionStore, generator ChatGenerator) *ChatService {
	return &ChatService{transactions: transactions, generator: generator}
}

// Stream replays all but the last message as prior turns and sends the final
// user message for completion. A grounding fetch failure degrades to an
// ungrounded conversation rather than failing the request.
func (s *ChatService) Stream(ctx context.Context, userID string, messages []ai.Message) (<-chan ai.Chunk, error) {
	grounding, err := s.transactions.RecentWithCategory(ctx, userID, chatGroundingLimit)
	if err != nil {
		log.Printf("chat grounding fetch failed for user %s: %v", userID, err)
		grounding = nil
	}
	history := messages[:len(messages)-1]
	last := messages[len(messages)-1]
	return s.generator.Chat(ctx, systemPrompt(grounding), Greeting, history, last.Content)
}

func systemPrompt(grounding []store.GroundingRow) string {
	var b strings.Builder
	b.WriteString(`You are "Dana", a friendly and expert AI financial assistant for the DanaWise app.
Your goal is to help the user understand their finances and make smarter decisions.

Guidelines:
- Use the transaction data below to give specific, data-driven answers
- If you do not know the answer or the data is insufficient, say so honestly
- Keep responses concise but helpful
- Format amounts as currency when discussing money
- Offer actionable suggestions where possible

User transactions (most recent first):
`)
	if len(grounding) == 0 {
		b.WriteString("(no transactions recorded yet)\n")
	}
	for _, row := range grounding {
		fmt.Fprintf(&b, "- %s | %s | %s | %s | %s\n",
			row.Date.Format("2006-01-02"), row.Type, money.FormatMinor(row.Amount),
			row.CategoryName, row.Description)
	}
	b.WriteString("\nThis data is private. Only use it to help this specific user.")
	return b.String()
}
