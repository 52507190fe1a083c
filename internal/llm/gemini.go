package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"accountanta/finassist/internal/apperrors"
	"accountanta/finassist/internal/config"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/tools"
)

// Gemini chat roles. The API has no system role; the system instruction is
// folded into the first user message instead of being dropped.
const (
	geminiRoleUser     = "user"
	geminiRoleModel    = "model"
	geminiRoleFunction = "function"
)

// GeminiClient implements Client on the Gemini API. One client is shared by
// all requests; each Generate call configures a fresh model handle so the
// tool catalog and generation settings never leak between calls.
type GeminiClient struct {
	client         *genai.Client
	modelName      string
	temperature    float32
	maxTokens      int32
	requestTimeout time.Duration
	log            logging.Logger
}

// NewGeminiClient connects to the Gemini API using the configured key.
func NewGeminiClient(ctx context.Context, cfg *config.Config, logger logging.Logger) (*GeminiClient, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:         client,
		modelName:      cfg.Gemini.Model,
		temperature:    float32(cfg.Gemini.Temperature),
		maxTokens:      int32(cfg.Gemini.MaxOutputTokens),
		requestTimeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
		log:            logger,
	}, nil
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate sends the transcript and tool catalog to Gemini and normalizes the
// reply. A reply with neither text nor function calls comes back as an empty
// Response, which the orchestrator treats as terminal.
func (c *GeminiClient) Generate(ctx context.Context, transcript []models.Message, catalog []tools.Declaration) (*Response, error) {
	contents, err := toContents(transcript)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, &apperrors.ModelError{Reason: "empty transcript"}
	}

	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)
	model.SetMaxOutputTokens(c.maxTokens)
	if len(catalog) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarationsToGenAI(catalog)}}
	}

	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	last := contents[len(contents)-1]
	session := model.StartChat()
	session.History = contents[:len(contents)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, &apperrors.ModelError{Reason: "generate content request failed", Err: err}
	}

	parsed := parseResponse(resp)
	c.log.WithFields(
		logging.Field{Key: logging.FieldTokenCount, Value: parsed.TokenCount},
		logging.Field{Key: logging.FieldCount, Value: len(parsed.FunctionCalls)},
	).Debug("Received model response")
	return parsed, nil
}

// toContents converts an internal transcript into Gemini chat contents.
// Leading system messages are folded into the first user message; function
// results become FunctionResponse parts under the function role.
func toContents(transcript []models.Message) ([]*genai.Content, error) {
	var systemText string
	contents := make([]*genai.Content, 0, len(transcript))
	systemFolded := false

	for _, msg := range transcript {
		switch msg.Role {
		case models.RoleSystem:
			if systemText != "" {
				systemText += "\n\n"
			}
			systemText += msg.Content
		case models.RoleUser:
			text := msg.Content
			if systemText != "" && !systemFolded {
				text = systemText + "\n\n" + text
				systemFolded = true
			}
			contents = append(contents, &genai.Content{
				Role:  geminiRoleUser,
				Parts: []genai.Part{genai.Text(text)},
			})
		case models.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  geminiRoleModel,
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		case models.RoleFunction:
			contents = append(contents, &genai.Content{
				Role: geminiRoleFunction,
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     msg.FunctionName,
					Response: responsePayload(msg.Content),
				}},
			})
		default:
			return nil, fmt.Errorf("unsupported transcript role: %q", msg.Role)
		}
	}

	// A transcript of only system messages still has to reach the model.
	if systemText != "" && !systemFolded {
		contents = append(contents, &genai.Content{
			Role:  geminiRoleUser,
			Parts: []genai.Part{genai.Text(systemText)},
		})
	}
	return contents, nil
}

// responsePayload decodes a serialized tool result back into the object form
// the API requires. Non-object or unparseable content is wrapped.
func responsePayload(content string) map[string]interface{} {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(content), &payload); err == nil && payload != nil {
		return payload
	}
	return map[string]interface{}{"result": content}
}

func declarationsToGenAI(catalog []tools.Declaration) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(catalog))
	for _, d := range catalog {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  schemaToGenAI(d.Parameters),
		})
	}
	return decls
}

func schemaToGenAI(s *tools.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        typeToGenAI(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = schemaToGenAI(prop)
		}
	}
	return out
}

func typeToGenAI(t string) genai.Type {
	switch t {
	case tools.TypeObject:
		return genai.TypeObject
	case tools.TypeString:
		return genai.TypeString
	case tools.TypeInteger:
		return genai.TypeInteger
	case tools.TypeNumber:
		return genai.TypeNumber
	default:
		return genai.TypeUnspecified
	}
}

// parseResponse flattens candidate parts into text and function calls. Text
// parts are concatenated; every FunctionCall part is collected in order.
func parseResponse(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	if resp == nil {
		return out
	}
	if resp.UsageMetadata != nil {
		out.TokenCount = int(resp.UsageMetadata.TotalTokenCount)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Text += string(p)
		case genai.FunctionCall:
			out.FunctionCalls = append(out.FunctionCalls, models.ToolCall{
				Name:      p.Name,
				Arguments: p.Args,
			})
		}
	}
	return out
}
