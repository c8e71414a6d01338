package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/NCpython/smartchefbot/internal/menu"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// extractTextLimit bounds how much menu text goes into the extraction
// prompt; anything longer blows the token budget for no gain.
const extractTextLimit = 3000

type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewGeminiClient(apiKey, model string, log *zap.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

// WithBaseURL points the client at a different endpoint. Tests use it
// to target an httptest server.
func (g *GeminiClient) WithBaseURL(url string) *GeminiClient {
	g.baseURL = url
	return g
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt to Gemini and returns the reply text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return g.call(ctx, []geminiPart{{Text: prompt}}, maxTokens, temperature)
}

func (g *GeminiClient) call(ctx context.Context, parts []geminiPart, maxTokens int, temperature float64) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return "", errors.New("missing GEMINI_MODEL")
	}

	url := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL,
		g.model,
		g.apiKey,
	)

	var payload geminiRequest
	payload.Contents = append(payload.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})
	payload.GenerationConfig.Temperature = temperature
	payload.GenerationConfig.MaxOutputTokens = maxTokens

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: %s", string(raw))
	}

	var result geminiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractFromText asks Gemini to pull menu items out of raw menu text
// and parses the reply through the fallback chain. LLM failure is
// contained: the rule-based scan of the original text still runs, so
// the worst case is a record with zero items.
func (g *GeminiClient) ExtractFromText(ctx context.Context, text, restaurantName string) (*menu.Record, error) {
	truncated := text
	if len(truncated) > extractTextLimit {
		truncated = truncated[:extractTextLimit]
	}

	prompt := fmt.Sprintf(`Extract menu items from the following restaurant menu text.
For each item, identify the name, price (in Euros), and description if available.

Menu Text:
%s

Please list the menu items in the following format:
Item: [name] | Price: [price] | Description: [description]

Only extract actual menu items with prices. Ignore headers, footers, and non-food items.

Menu Items:`, truncated)

	reply, err := g.Generate(ctx, prompt, 2048, 0.2)
	if err != nil {
		g.log.Warn("gemini text extraction failed, using rule-based scan", zap.Error(err))
		reply = ""
	}

	items := ParseMenuReply(reply, text)

	g.log.Info("menu extracted from text",
		zap.String("restaurant", restaurantName),
		zap.Int("items", len(items)))

	return &menu.Record{
		RestaurantName:   restaurantName,
		Items:            items,
		TotalItems:       len(items),
		ExtractionMethod: "gemini_text",
		RawText:          text,
	}, nil
}

// ExtractFromPDF sends the PDF itself to Gemini as inline data and
// parses the reply. Failure never propagates as an error; the caller
// gets a record with zero items and an error string instead.
func (g *GeminiClient) ExtractFromPDF(ctx context.Context, pdfData []byte, restaurantName string) (*menu.Record, error) {
	prompt := fmt.Sprintf(`You are a menu extraction expert. Analyze this restaurant menu PDF and extract ALL menu items.

Restaurant: %s

Instructions:
1. Look through the ENTIRE PDF carefully
2. Extract EVERY menu item you can find
3. Include names, prices, and descriptions
4. Group items by categories if visible
5. Return ONLY a JSON array of items

Required JSON format:
[
    {
        "name": "Exact item name",
        "price": "Price with currency symbol",
        "description": "Item description if available",
        "category": "Category name if visible"
    }
]

Be extremely thorough and extract ALL menu items from every page.`, restaurantName)

	parts := []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{
			MimeType: "application/pdf",
			Data:     base64.StdEncoding.EncodeToString(pdfData),
		}},
	}

	reply, err := g.call(ctx, parts, 2048, 0.2)
	if err != nil {
		g.log.Error("gemini pdf extraction failed", zap.Error(err))
		return &menu.Record{
			RestaurantName:   restaurantName,
			Items:            []menu.Item{},
			TotalItems:       0,
			ExtractionMethod: "gemini_direct_pdf",
			Error:            err.Error(),
		}, nil
	}

	items := ParseMenuReply(reply, "")

	g.log.Info("menu extracted from pdf",
		zap.String("restaurant", restaurantName),
		zap.Int("items", len(items)))

	return &menu.Record{
		RestaurantName:   restaurantName,
		Items:            items,
		TotalItems:       len(items),
		ExtractionMethod: "gemini_direct_pdf",
	}, nil
}
