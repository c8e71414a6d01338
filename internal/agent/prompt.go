package agent

import (
	"fmt"
	"sort"
	"strings"
)

const systemPrompt = `You are SmartChefBot, a helpful AI assistant specialized in restaurant operations, business advice, and compliance.

Your role is to help restaurant owners with:
- Business Operations: inventory management, discounts, promotions, menu optimization
- Menu Management: menu items, ingredients, pricing, item recommendations
- Food Safety & Compliance: HACCP, regulations, health and safety guidelines
- Business Intelligence: profit optimization, waste reduction, popular items analysis
- Practical Advice: day-to-day operational questions and decision-making

You have access to the restaurant's actual menu data and can provide specific, actionable advice based on their real menu items.

When helping with business decisions:
- Be specific about which menu items to consider
- Provide practical, actionable recommendations
- Focus on maximizing profit and reducing waste
- Consider ingredient overlap and inventory management

Always be professional, accurate, and helpful. Provide advice that restaurant owners can immediately act upon.`

// toolDescriptions is ordered; it renders into every generic prompt.
var toolDescriptions = []struct {
	name, description string
}{
	{"menu_search", "Search for menu items and their details from uploaded restaurant menus"},
	{"menu_list", "List all available menu items for a restaurant"},
	{"menu_upload", "Upload and extract menu data from a PDF file"},
}

// PromptBuilder assembles the fixed-section prompt blocks. It holds no
// mutable state; variants differ only in their instructional text.
type PromptBuilder struct {
	system string
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{system: systemPrompt}
}

// Build produces the generic prompt: system persona, tool list,
// optional context pairs, optional scratchpad, then the user input.
func (b *PromptBuilder) Build(userInput string, context map[string]string, scratchpad string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("### SYSTEM ###\n%s\n", b.system))

	parts = append(parts, "\n### AVAILABLE TOOLS ###")
	for _, tool := range toolDescriptions {
		parts = append(parts, fmt.Sprintf("- %s: %s", tool.name, tool.description))
	}

	if len(context) > 0 {
		parts = append(parts, "\n### CONTEXT ###")
		for _, key := range sortedKeys(context) {
			parts = append(parts, fmt.Sprintf("%s: %s", key, context[key]))
		}
	}

	if scratchpad != "" {
		parts = append(parts, fmt.Sprintf("\n### AI SCRATCHPAD ###\n%s\n", scratchpad))
	} else {
		parts = append(parts,
			"\n### AI SCRATCHPAD ###",
			"Thinking: Let me analyze this query and decide the best approach...",
			"Decision: ")
	}

	parts = append(parts, fmt.Sprintf("\n### USER INPUT ###\n%s\n", userInput))
	parts = append(parts, "\n### ASSISTANT RESPONSE ###")

	return strings.Join(parts, "\n")
}

// BuildBusiness produces the business-analysis variant around
// retrieved menu data.
func (b *PromptBuilder) BuildBusiness(userQuery, menuContext string) string {
	return fmt.Sprintf(`You are a smart restaurant business advisor. A restaurant owner has asked you the following question:

"%s"

Here is their current menu data:

%s

Based on this menu and their question, provide practical, actionable business advice. Be specific about which menu items they should consider and why. Focus on helping them maximize profit, reduce waste, and make smart business decisions.

IMPORTANT FORMATTING REQUIREMENTS:
- Use numbered lists (1., 2., 3.) instead of bullet points or asterisks
- Use proper HTML formatting with <h2>, <h3>, <strong> tags
- Structure your response with clear sections
- Use <div class="highlight-box"> for important recommendations
- Make it visually appealing and easy to scan

Your response should be:
1. Practical and actionable
2. Specific to their actual menu items
3. Clear and easy to understand
4. Focused on business value
5. Well-formatted with proper HTML structure

Respond in a friendly, professional tone with excellent formatting.`, userQuery, menuContext)
}

// BuildCompliance produces the HACCP compliance-analysis variant.
func (b *PromptBuilder) BuildCompliance(userQuery, menuData, scratchpad string) string {
	if scratchpad == "" {
		scratchpad = "Thinking: I will analyze the menu items against HACCP and food safety requirements..."
	}

	return fmt.Sprintf(`### SYSTEM ###
You are an expert restaurant compliance consultant specializing in HACCP (Hazard Analysis and Critical Control Points) and food safety regulations.

Your task is to analyze restaurant menus and provide specific, actionable recommendations to ensure compliance with food safety standards.

IMPORTANT FORMATTING REQUIREMENTS:
- Use numbered lists (1., 2., 3.) instead of bullet points or asterisks
- Use proper HTML formatting with <h2>, <h3>, <strong> tags
- Structure your response with clear sections
- Use <div class="highlight-box"> for critical recommendations
- Make it visually appealing and easy to scan

### AVAILABLE TOOLS ###
- menu_data: Access to current restaurant menu items

### CONTEXT - CURRENT MENU DATA ###
%s

### AI SCRATCHPAD ###
%s

Step 1: Review the current menu items
Step 2: Identify potential compliance issues
Step 3: Provide specific recommendations for each issue
Step 4: Suggest menu modifications or additions

### USER INPUT ###
%s

### ASSISTANT RESPONSE ###
<div class="highlight-box">
<h2>HACCP Compliance Analysis</h2>
<p>Based on my analysis of your current menu and HACCP requirements, here are my recommendations:</p>
</div>

<h2>1. Current Menu Review</h2>
`, menuData, scratchpad, userQuery)
}

// Context pairs render in sorted key order so prompts are stable.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
