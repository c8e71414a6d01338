package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NCpython/smartchefbot/internal/llm"
	"github.com/NCpython/smartchefbot/internal/menu"
)

// MenuSource is the slice of the menu store the agent needs.
type MenuSource interface {
	ListNames() ([]string, error)
	Load(name string) (*menu.Record, error)
	SearchAll(query string) ([]menu.TaggedItem, error)
}

// Result carries the agent's answer plus an immutable trace of the
// steps taken. The trace is diagnostics only and is never persisted.
type Result struct {
	Response      string   `json:"response"`
	Intent        Intent   `json:"intent"`
	Trace         []string `json:"trace"`
	ItemsAnalyzed int      `json:"items_analyzed,omitempty"`
}

// Token budgets per branch, carried over from the original tuning.
const (
	businessMaxTokens   = 600
	complianceMaxTokens = 600
	formattingMaxTokens = 300
	generalMaxTokens    = 400
)

// Agent routes a classified query to the menu store, the LLM, or both.
// All collaborators are injected at construction; the agent itself is
// stateless and safe for concurrent use.
type Agent struct {
	store       MenuSource
	llm         llm.Generator
	prompts     *PromptBuilder
	temperature float64
	log         *zap.Logger
}

func New(store MenuSource, generator llm.Generator, temperature float64, log *zap.Logger) *Agent {
	return &Agent{
		store:       store,
		llm:         generator,
		prompts:     NewPromptBuilder(),
		temperature: temperature,
		log:         log,
	}
}

// Process answers one query: classify, execute the branch the intent
// implies, return the text plus the trace. Every branch runs exactly
// once; hybrid branches follow retrieve, format, embed-in-prompt,
// generate, return.
func (a *Agent) Process(ctx context.Context, query string, reqContext map[string]string) Result {
	trace := []string{"Processing query: " + query}

	cls := Classify(query)
	trace = append(trace, "Decided action: "+string(cls.Intent))

	a.log.Info("query classified",
		zap.String("intent", string(cls.Intent)),
		zap.String("query", query))

	switch cls.Intent {
	case IntentBusinessOps:
		return a.runBusiness(ctx, cls, trace)
	case IntentMenuCompliance:
		return a.runCompliance(ctx, cls, trace)
	case IntentPDFExtraction:
		trace = append(trace, "Processing PDF with Gemini LLM")
		return Result{
			Response: "PDF extraction mode activated. Please upload your PDF file using the upload button above, and Gemini will process it directly to extract menu items.",
			Intent:   cls.Intent,
			Trace:    trace,
		}
	case IntentSearchMenu, IntentListMenus:
		return a.runTool(ctx, cls, trace)
	default:
		return a.runGeneral(ctx, cls, reqContext, trace)
	}
}

// runBusiness is the hybrid business-operations branch.
func (a *Agent) runBusiness(ctx context.Context, cls Classification, trace []string) Result {
	trace = append(trace, "Hybrid mode: Business operations with menu data")

	menuContext, itemCount, err := a.collectMenuContext()
	if err != nil {
		return Result{Response: errorReply(err), Intent: cls.Intent, Trace: trace}
	}
	if itemCount == 0 {
		return Result{
			Response: "No menu data available. Please upload a menu first so I can help with your business operations.",
			Intent:   cls.Intent,
			Trace:    trace,
		}
	}
	trace = append(trace,
		fmt.Sprintf("Retrieved %d items from menu data", itemCount),
		"Formatted menu data for analysis")

	prompt := a.prompts.BuildBusiness(cls.Query, menuContext)
	response := a.generate(ctx, prompt, businessMaxTokens)
	trace = append(trace, "Generated business recommendations")

	return Result{
		Response:      response,
		Intent:        cls.Intent,
		Trace:         trace,
		ItemsAnalyzed: itemCount,
	}
}

// runCompliance is the hybrid compliance-analysis branch.
func (a *Agent) runCompliance(ctx context.Context, cls Classification, trace []string) Result {
	trace = append(trace, "Hybrid mode: Analyzing menu for compliance")

	menuContext, itemCount, err := a.collectMenuContext()
	if err != nil {
		return Result{Response: errorReply(err), Intent: cls.Intent, Trace: trace}
	}
	if itemCount == 0 {
		return Result{
			Response: "No menu data available. Please upload a menu first to analyze it for compliance.",
			Intent:   cls.Intent,
			Trace:    trace,
		}
	}
	trace = append(trace,
		fmt.Sprintf("Retrieved %d items from menu data", itemCount),
		"Formatted menu data for analysis")

	prompt := a.prompts.BuildCompliance(cls.Query, menuContext, strings.Join(trace, "\n"))
	response := a.generate(ctx, prompt, complianceMaxTokens)
	trace = append(trace, "Generated compliance recommendations")

	return Result{
		Response:      response,
		Intent:        cls.Intent,
		Trace:         trace,
		ItemsAnalyzed: itemCount,
	}
}

// runTool executes the search/list branches. Non-empty tool output is
// re-phrased through the LLM; data-less fallback strings return as-is.
func (a *Agent) runTool(ctx context.Context, cls Classification, trace []string) Result {
	toolResult := a.executeTool(cls)
	trace = append(trace, "Tool result obtained")

	if strings.HasPrefix(toolResult, "No menu") {
		return Result{Response: toolResult, Intent: cls.Intent, Trace: trace}
	}

	input := fmt.Sprintf(
		"User asked: %s\n\nData from menu tool:\n%s\n\nPlease provide a helpful, natural response.",
		cls.Query, toolResult)
	prompt := a.prompts.Build(input, nil, strings.Join(trace, "\n"))

	response, err := a.llm.Generate(ctx, prompt, formattingMaxTokens, a.temperature)
	if err != nil || response == "" {
		// The raw tool output is already a usable answer.
		return Result{Response: toolResult, Intent: cls.Intent, Trace: trace}
	}
	return Result{Response: response, Intent: cls.Intent, Trace: trace}
}

// runGeneral sends the query straight to the LLM with the generic prompt.
func (a *Agent) runGeneral(ctx context.Context, cls Classification, reqContext map[string]string, trace []string) Result {
	trace = append(trace, "Using LLM for general query")

	prompt := a.prompts.Build(cls.Query, reqContext, strings.Join(trace, "\n"))
	response := a.generate(ctx, prompt, generalMaxTokens)

	return Result{Response: response, Intent: cls.Intent, Trace: trace}
}

func (a *Agent) executeTool(cls Classification) string {
	switch cls.Intent {
	case IntentSearchMenu:
		results, err := a.store.SearchAll(cls.Query)
		if err != nil {
			return errorReply(err)
		}
		if len(results) == 0 {
			names, _ := a.store.ListNames()
			if len(names) == 0 {
				return "No menus available. Please upload a menu first."
			}
			return "No menu items found matching your query. Available restaurants: " +
				strings.Join(names, ", ")
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d menu items:\n\n", len(results))
		for _, item := range results {
			fmt.Fprintf(&b, "Restaurant: %s\n", item.Restaurant)
			fmt.Fprintf(&b, "Item: %s\n", item.Name)
			if item.Price != "" {
				fmt.Fprintf(&b, "Price: %s\n", item.Price)
			}
			if item.Description != "" {
				fmt.Fprintf(&b, "Description: %s\n", item.Description)
			}
			b.WriteString("\n")
		}
		return b.String()

	case IntentListMenus:
		names, err := a.store.ListNames()
		if err != nil {
			return errorReply(err)
		}
		if len(names) == 0 {
			return "No menus available yet. Please upload a menu first."
		}
		return "Available restaurant menus: " + strings.Join(names, ", ")
	}
	return "Unknown action"
}

// collectMenuContext loads every restaurant's items and renders them
// as the text block hybrid prompts embed.
func (a *Agent) collectMenuContext() (string, int, error) {
	names, err := a.store.ListNames()
	if err != nil {
		return "", 0, err
	}
	if len(names) == 0 {
		return "", 0, nil
	}

	var b strings.Builder
	b.WriteString("CURRENT MENU ITEMS:\n\n")

	total := 0
	for _, name := range names {
		record, err := a.store.Load(name)
		if err != nil {
			a.log.Warn("menu unavailable for analysis",
				zap.String("restaurant", name), zap.Error(err))
			continue
		}

		fmt.Fprintf(&b, "\nRestaurant: %s\n", name)
		fmt.Fprintf(&b, "Total items: %d\n", len(record.Items))
		for _, item := range record.Items {
			fmt.Fprintf(&b, "- %s", item.Name)
			if item.Price != "" {
				fmt.Fprintf(&b, " (%s)", item.Price)
			}
			if item.Description != "" {
				fmt.Fprintf(&b, ": %s", item.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		total += len(record.Items)
	}

	return b.String(), total, nil
}

// generate wraps the LLM call so external failures surface as a
// user-visible error string and never as a hard fault.
func (a *Agent) generate(ctx context.Context, prompt string, maxTokens int) string {
	response, err := a.llm.Generate(ctx, prompt, maxTokens, a.temperature)
	if err != nil {
		a.log.Error("llm generate failed", zap.Error(err))
		return errorReply(err)
	}
	if response == "" {
		return "I apologize, but I couldn't generate a response. Please try again."
	}
	return response
}

func errorReply(err error) string {
	return "Error generating response: " + err.Error()
}
