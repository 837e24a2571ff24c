// Package assistant answers shop questions with a Gemini model that can
// call a small set of read-only tools.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"jewelry-pos/internal/tenant"
)

// maxRounds bounds the tool-call exchanges per question.
const maxRounds = 5

type Agent struct {
	client *genai.Client
	model  string
	tools  *Toolbox
}

func New(ctx context.Context, apiKey, model string, tools *Toolbox) (*Agent, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Agent{client: client, model: model, tools: tools}, nil
}

func (a *Agent) Close() error { return a.client.Close() }

func systemPrompt() string {
	return fmt.Sprintf(`Today is %s. You are the assistant of a jewelry shop point-of-sale system.
Prices are in KRW. Gold is quoted per don (3.75 g).

RULES:
1. If the user asks about a product's PRICE, STOCK or DETAILS, call 'check_inventory' with a search term
   and answer from its result. Never ask the user for an ID.
2. For today's gold price use 'get_gold_price'. Mention when the quote is stale.
3. For sales or revenue use 'get_sales_report'.
4. To estimate the price of a jewelry piece from weight, purity and labor use 'quote_price'.`,
		time.Now().Format("2006-01-02"))
}

func declarations() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        ToolCheckInventory,
				Description: "Search the inventory by name, product code or category. Returns ID, code, name, stock and price.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "Search term; empty lists everything"},
					},
				},
			},
			{
				Name:        ToolGoldPrice,
				Description: "Get the current reference gold price per don and per gram for 24K, 18K and 14K.",
			},
			{
				Name:        ToolSalesReport,
				Description: "Get total completed sales revenue and count for a date range.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
						"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
					},
					Required: []string{"start_date", "end_date"},
				},
			},
			{
				Name:        ToolQuotePrice,
				Description: "Price a jewelry piece at today's gold price.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"weight_g":   {Type: genai.TypeNumber, Description: "Gold weight in grams"},
						"purity":     {Type: genai.TypeString, Description: "24K, 18K, 14K, PT, ..."},
						"labor_cost": {Type: genai.TypeNumber, Description: "Labor cost in KRW"},
						"margin_pct": {Type: genai.TypeNumber, Description: "Margin percent"},
						"vat_pct":    {Type: genai.TypeNumber, Description: "VAT percent, usually 10"},
						"fee_pct":    {Type: genai.TypeNumber, Description: "Card fee percent"},
					},
					Required: []string{"weight_g", "purity"},
				},
			},
		},
	}}
}

// Ask runs one question through the model, executing tool calls for the
// caller's shop until the model answers in text.
func (a *Agent) Ask(ctx context.Context, scope tenant.Scope, message string) (string, error) {
	model := a.client.GenerativeModel(a.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt())}}
	model.Tools = declarations()

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}

	for round := 0; round < maxRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			return printResponse(resp), nil
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			replies = append(replies, genai.FunctionResponse{
				Name:     call.Name,
				Response: a.run(ctx, scope, call),
			})
		}
		if resp, err = session.SendMessage(ctx, replies...); err != nil {
			return "", err
		}
	}
	return printResponse(resp), nil
}

// run executes a call and converts the result to the plain JSON shapes the
// function response accepts. Tool errors go back to the model as text.
func (a *Agent) run(ctx context.Context, scope tenant.Scope, call genai.FunctionCall) map[string]any {
	out, err := a.tools.Call(ctx, scope, call.Name, call.Args)
	if err != nil {
		zap.L().Warn("assistant tool failed", zap.String("tool", call.Name), zap.Error(err))
		return map[string]any{"error": err.Error()}
	}
	plain, err := toPlain(out)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return plain
}

func toPlain(v map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	err = json.Unmarshal(raw, &out)
	return out, err
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if fc, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, fc)
		}
	}
	return calls
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt)
			}
		}
	}
	return "I completed the action."
}
