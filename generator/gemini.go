package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futurecast/futurecast/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	DefaultGeminiModel = "gemini-2.5-pro"
	geminiTemperature  = 0.3
	geminiTimeout      = 60 * time.Second
)

const promptTemplate = `As an expert economic analyst, provide a detailed economic forecast for %[1]s regarding %[2]s for the year %[3]d.

Please provide:
1. A specific numerical prediction or percentage with proper economic context
2. A confidence level (0-100) based on available data and economic stability
3. A detailed analysis explaining the forecast methodology and reasoning
4. Key economic drivers that influence this forecast

Focus on realistic, data-driven predictions based on current economic trends, historical data, and geopolitical factors.
Consider factors like inflation rates, GDP growth, government policies, international trade, and global economic conditions.

Respond in JSON with "title" set to "%[2]s %[3]d", "country" set to "%[1]s", and the fields value, confidence, detail and key_drivers.`

// forecastSchema mirrors Result so the model answers with a document decodeResult accepts.
var forecastSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString},
		"country":     {Type: genai.TypeString},
		"value":       {Type: genai.TypeString},
		"confidence":  {Type: genai.TypeInteger},
		"detail":      {Type: genai.TypeString},
		"key_drivers": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"title", "country", "value", "confidence", "detail", "key_drivers"},
}

// GeminiGenerator asks the Gemini API directly, without an external script.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(geminiTemperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = forecastSchema

	logger.Infof("Gemini forecast generator initialized with model %s", modelName)
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, spec Spec, year int) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(Prompt(spec, year)))
	if err != nil {
		return nil, &Error{Spec: spec, Err: fmt.Errorf("Gemini API error: %w", err)}
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, &Error{Spec: spec, Err: err}
	}
	return decodeResult(spec, text)
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// Prompt renders the analyst prompt for one country and topic.
func Prompt(spec Spec, year int) string {
	return fmt.Sprintf(promptTemplate, spec.Country, spec.Topic, year)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no response from Gemini API")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", errors.New("empty candidate from Gemini API")
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text in Gemini response")
	}
	return b.String(), nil
}
