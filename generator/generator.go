package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/futurecast/futurecast/database/model"
	"github.com/goccy/go-json"
)

// Result is the JSON document the external generator prints on stdout.
type Result struct {
	Title      string   `json:"title"`
	Country    string   `json:"country"`
	Value      string   `json:"value"`
	Detail     string   `json:"detail"`
	Confidence int      `json:"confidence"`
	KeyDrivers []string `json:"key_drivers"`
}

// Forecast converts the result into a row; Value becomes the free summary.
func (r Result) Forecast(forecastId int) (*model.Forecast, error) {
	return model.NewForecast(forecastId, r.Country, r.Title, r.Value, model.ForecastDetail{
		Detail:     r.Detail,
		Confidence: r.Confidence,
		KeyDrivers: r.KeyDrivers,
	})
}

const FallbackSummary = "Data processing in progress"

// Fallback is stored in place of a forecast the generator could not produce.
func Fallback(spec Spec, year int) Result {
	return Result{
		Title:      Title(spec.Topic, year),
		Country:    spec.Country,
		Value:      FallbackSummary,
		Detail:     fmt.Sprintf("Economic forecast for %s %s is being processed. AI analysis will be available soon.", spec.Country, spec.Topic),
		Confidence: 60,
		KeyDrivers: []string{"Economic indicators analysis", "Regional market conditions", "Government policy impacts"},
	}
}

type Generator interface {
	Generate(ctx context.Context, spec Spec, year int) (*Result, error)
}

// Error reports a generator run that produced no usable forecast.
type Error struct {
	Spec   Spec
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("generator failed for %s: %v", e.Spec, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ProcessGenerator runs `Command [Script] country topic year` and decodes its stdout.
type ProcessGenerator struct {
	Command string
	Script  string
}

func NewProcessGenerator(command, script string) *ProcessGenerator {
	return &ProcessGenerator{Command: command, Script: script}
}

func (g *ProcessGenerator) Generate(ctx context.Context, spec Spec, year int) (*Result, error) {
	args := make([]string, 0, 4)
	if g.Script != "" {
		args = append(args, g.Script)
	}
	args = append(args, spec.Country, spec.Topic, strconv.Itoa(year))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.Command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &Error{Spec: spec, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	return decodeResult(spec, stdout.String())
}

// decodeResult parses a generator document, tolerating a markdown code fence around it.
func decodeResult(spec Spec, raw string) (*Result, error) {
	result := &Result{}
	if err := json.Unmarshal([]byte(extractJSON(raw)), result); err != nil {
		return nil, &Error{Spec: spec, Err: fmt.Errorf("invalid generator output: %w", err)}
	}
	if result.Title == "" {
		return nil, &Error{Spec: spec, Err: fmt.Errorf("generator output has no title")}
	}
	if result.Country == "" {
		result.Country = spec.Country
	}
	return result, nil
}

func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if start := strings.Index(text, "```"); start != -1 {
		if end := strings.Index(text[start+3:], "```"); end != -1 {
			fenced := strings.TrimPrefix(text[start+3:start+3+end], "json")
			return strings.TrimSpace(fenced)
		}
	}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
