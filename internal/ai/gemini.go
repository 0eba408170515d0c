package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// Message is one prior turn of a conversation, as the API consumer sends it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is one unit of a streamed completion. A chunk with Err set is the
// terminal element of the stream.
type Chunk struct {
	Text string
	Err  error
}

// Gemini is the gateway to the hosted generative model. It implements both
// the single-shot insight completion and the streamed chat.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate requests one short non-streamed completion.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 150,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Chat seeds a conversation with the system prompt and greeting, replays the
// prior turns, sends the final user message and streams the completion into
// a bounded channel. The channel is always closed; a mid-stream provider
// failure is delivered as the last chunk's Err. Cancelling ctx stops the
// upstream call.
func (g *Gemini) Chat(ctx context.Context, system, greeting string, history []Message, message string) (<-chan Chunk, error) {
	contents := make([]*genai.Content, 0, len(history)+2)
	contents = append(contents,
		genai.NewContentFromText(system, genai.RoleUser),
		genai.NewContentFromText(greeting, genai.RoleModel),
	)
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.8),
		TopP:            genai.Ptr[float32](0.9),
		MaxOutputTokens: 1200,
	}
	chat, err := g.client.Chats.Create(ctx, g.model, config, contents)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk, 16)
	go func() {
		defer close(out)
		for resp, err := range chat.SendMessageStream(ctx, genai.Part{Text: message}) {
			if err != nil {
				out <- Chunk{Err: err}
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case out <- Chunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
