package aienhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/docextract/docextract/internal/model"
)

// GeminiEnhancer fills Record gaps using the Gemini API, structured-output
// mode. Grounded on the teacher's google/generative-ai-go usage and the
// retrieval pack's bosocmputer-account_ocr_gemini/internal/ai/gemini.go
// genai.NewClient/GenerativeModel/ResponseSchema idiom.
type GeminiEnhancer struct {
	apiKey    string
	modelName string
}

// NewGeminiEnhancer builds a GeminiEnhancer for the given API key and model
// name (e.g. "gemini-1.5-flash").
func NewGeminiEnhancer(apiKey, modelName string) *GeminiEnhancer {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiEnhancer{apiKey: apiKey, modelName: modelName}
}

var gapSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"supplier_email":        {Type: genai.TypeString},
		"supplier_phone":        {Type: genai.TypeString},
		"supplier_website":      {Type: genai.TypeString},
		"supplier_tax_id":       {Type: genai.TypeString},
		"buyer_name":            {Type: genai.TypeString},
		"invoice_number":        {Type: genai.TypeString},
		"purchase_order_number": {Type: genai.TypeString},
		"invoice_date":          {Type: genai.TypeString},
		"due_date":              {Type: genai.TypeString},
		"payment_terms":         {Type: genai.TypeString},
		"subtotal":              {Type: genai.TypeString},
		"total_tax":             {Type: genai.TypeString},
		"amount_paid":           {Type: genai.TypeString},
		"balance_due":           {Type: genai.TypeString},
	},
}

// Enhance asks Gemini to fill whatever fields record is missing. Any
// failure — client creation, the API call, or decoding the response — is
// swallowed into a warning; record is always returned usable.
func (g *GeminiEnhancer) Enhance(ctx context.Context, record model.Record, rawText string) (model.Record, []string) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return record, []string{fmt.Sprintf("gemini enhancer: client init failed: %v", err)}
	}
	defer client.Close()

	gm := client.GenerativeModel(g.modelName)
	gm.ResponseMIMEType = "application/json"
	gm.ResponseSchema = gapSchema

	resp, err := gm.GenerateContent(ctx, genai.Text(gapsPrompt(record, rawText)))
	if err != nil {
		return record, []string{fmt.Sprintf("gemini enhancer: generate content failed: %v", err)}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return record, []string{"gemini enhancer: empty response"}
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw = string(text)
			break
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return record, []string{"gemini enhancer: no text part in response"}
	}

	var p patch
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return record, []string{fmt.Sprintf("gemini enhancer: malformed JSON response: %v", err)}
	}

	return applyPatch(record, p), nil
}
