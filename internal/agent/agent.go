package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m2tx/workspace-assistant/internal/conversation"
	"github.com/m2tx/workspace-assistant/internal/model"
	"github.com/m2tx/workspace-assistant/internal/prompt"
	"google.golang.org/genai"
)

// ChatSession is the part of *genai.Chat the agent uses.
type ChatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	History(curated bool) []*genai.Content
}

// ChatStarter opens a chat seeded with prior history.
type ChatStarter interface {
	Start(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (ChatSession, error)
}

type genaiChats struct {
	chats *genai.Chats
}

// NewChatStarter adapts a genai client to ChatStarter.
func NewChatStarter(client *genai.Client) ChatStarter {
	return &genaiChats{chats: client.Chats}
}

func (g *genaiChats) Start(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (ChatSession, error) {
	chat, err := g.chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// Config is fixed at startup and never mutated afterwards.
type Config struct {
	Model string
	// BlockNone disables provider content filtering for all harm categories.
	// Calendar and mail text trips the default filters far too often.
	BlockNone bool
	// Timeout bounds the provider call. Zero means no in-process timeout.
	Timeout time.Duration
}

type Agent struct {
	chats  ChatStarter
	cfg    Config
	tools  []*genai.Tool
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Agent)

// WithClock overrides the clock used for the date/time context.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

func New(chats ChatStarter, cfg Config, tools []*genai.Tool, opts ...Option) *Agent {
	a := &Agent{
		chats:  chats,
		cfg:    cfg,
		tools:  tools,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Request is one client call: the raw transcript and the caller's zone.
type Request struct {
	History  []any
	Timezone string
}

type Result struct {
	ResponsePart   model.Part
	UpdatedHistory []model.Content
	// Warning is set when the requested timezone could not be resolved.
	Warning    string
	TurnKind   conversation.TurnKind
	PriorTurns int
}

// Exchange runs one turn: normalize the transcript, send the last turn to
// the model with the rest as history, and decode the reply. Transcript
// problems are reported before any provider call.
func (a *Agent) Exchange(ctx context.Context, req Request) (*Result, error) {
	transcript := conversation.Normalize(req.History)

	prior, current, err := conversation.SelectTurn(transcript)
	if err != nil {
		return nil, err
	}

	instruction, pctx := prompt.Build(req.Timezone, a.now())

	result := &Result{
		TurnKind:   current.Kind,
		PriorTurns: len(prior),
	}
	if pctx.Fallback {
		result.Warning = fmt.Sprintf("unknown timezone %q, using server local time", pctx.Timezone)
		a.logger.Warn("timezone fallback", "timezone", pctx.Timezone, "location", pctx.Now.Location().String())
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	chat, err := a.chats.Start(ctx, a.cfg.Model, a.generateConfig(instruction), toGenAIContents(prior))
	if err != nil {
		return nil, fmt.Errorf("provider: start chat: %w", err)
	}

	a.logger.Debug("sending turn",
		"kind", current.Kind.String(),
		"prior_turns", len(prior),
		"timezone", pctx.Timezone,
	)

	resp, err := chat.SendMessage(ctx, messageParts(current)...)
	if err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}

	part, err := DecodeReply(resp)
	if err != nil {
		if resp != nil && resp.PromptFeedback != nil {
			a.logger.Warn("reply blocked", "block_reason", string(resp.PromptFeedback.BlockReason))
		}
		return nil, err
	}

	result.ResponsePart = part
	result.UpdatedHistory = SerializeHistory(chat.History(false))
	return result, nil
}

func (a *Agent) generateConfig(instruction string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Tools: a.tools,
	}
	if a.cfg.BlockNone {
		cfg.SafetySettings = blockNoneSafetySettings()
	}
	return cfg
}

func blockNoneSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}

// messageParts builds the new message: the user's text, or the tool result
// parts exactly as the client sent them.
func messageParts(current conversation.CurrentTurn) []genai.Part {
	if current.Kind == conversation.UserText {
		return []genai.Part{{Text: current.Text}}
	}

	parts := make([]genai.Part, 0, len(current.Parts))
	for _, p := range current.Parts {
		parts = append(parts, *toGenAIPart(p))
	}
	return parts
}

// toGenAIContents converts transport turns into genai history. Empty text
// parts are left out; a turn made only of them is skipped.
func toGenAIContents(contents []model.Content) []*genai.Content {
	result := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		gc := &genai.Content{Role: c.Role, Parts: make([]*genai.Part, 0, len(c.Parts))}
		for _, p := range c.Parts {
			if isBlank(p) {
				continue
			}
			gc.Parts = append(gc.Parts, toGenAIPart(p))
		}
		if len(gc.Parts) == 0 {
			continue
		}
		result = append(result, gc)
	}
	return result
}

func toGenAIPart(p model.Part) *genai.Part {
	switch {
	case p.FunctionCall != nil:
		return &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   p.FunctionCall.ID,
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			},
		}
	case p.FunctionResponse != nil:
		return &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				ID:       p.FunctionResponse.ID,
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			},
		}
	default:
		return &genai.Part{Text: p.Text}
	}
}
