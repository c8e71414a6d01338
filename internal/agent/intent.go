package agent

import "strings"

// Intent is the classified purpose of a user query. It drives which
// collaborators the agent invokes.
type Intent string

const (
	IntentPDFExtraction  Intent = "pdf_extraction"
	IntentBusinessOps    Intent = "business_operations"
	IntentMenuCompliance Intent = "analyze_menu_compliance"
	IntentSearchMenu     Intent = "search_menu"
	IntentListMenus      Intent = "list_menus"
	IntentGeneralQuery   Intent = "general_query"
)

// Classification pairs the chosen intent with the query it came from.
type Classification struct {
	Intent Intent
	Query  string
}

var (
	uploadKeywords = []string{"upload", "add menu", "extract menu", "process pdf", "analyze pdf"}

	businessKeywords = []string{
		"discount", "expir", "sale", "promote", "special", "suggest", "recommend",
		"should i", "what should", "which items", "inventory", "stock", "waste",
		"profit", "popular", "best seller", "slow moving",
	}

	complianceKeywords = []string{
		"compliant", "compliance", "change menu", "make menu", "improve menu",
		"haccp", "food safety", "regulation", "requirement", "safe", "hygiene",
	}

	ingredientKeywords = []string{
		"chicken", "beef", "pork", "fish", "salmon", "vegetables", "dairy",
		"eggs", "rice", "pasta", "cheese", "tomato",
	}

	// menuReferences gates the hybrid rules; menuKeywords (a superset
	// with "price" and the serve phrase) triggers the plain search rule.
	menuReferences = []string{"menu", "item", "dish", "food", "ingredient"}
	menuKeywords   = []string{"menu", "item", "dish", "food", "price", "what do you serve"}
)

// rule is one (predicate, intent) pair. Rules are evaluated top to
// bottom and the first match wins; the ordering changes behavior and
// must not be rearranged. A query carrying business, compliance and
// menu keywords at once resolves to business_operations because that
// rule runs first.
type rule struct {
	match  func(q string) bool
	intent Intent
}

var rules = []rule{
	{matchAny(uploadKeywords), IntentPDFExtraction},
	{matchBoth(businessKeywords, menuReferences), IntentBusinessOps},
	{matchBoth(complianceKeywords, menuReferences), IntentMenuCompliance},
	{matchBoth(ingredientKeywords, menuReferences), IntentBusinessOps},
	{matchAny(menuKeywords), IntentSearchMenu},
	{matchList, IntentListMenus},
}

// Classify maps a query to an intent. Pure and deterministic: every
// input produces some intent, with general_query as the fallback.
func Classify(query string) Classification {
	q := strings.ToLower(query)

	for _, r := range rules {
		if r.match(q) {
			return Classification{Intent: r.intent, Query: query}
		}
	}
	return Classification{Intent: IntentGeneralQuery, Query: query}
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func matchAny(keywords []string) func(string) bool {
	return func(q string) bool { return containsAny(q, keywords) }
}

func matchBoth(first, second []string) func(string) bool {
	return func(q string) bool {
		return containsAny(q, first) && containsAny(q, second)
	}
}

func matchList(q string) bool {
	return strings.Contains(q, "list") &&
		(strings.Contains(q, "restaurant") || strings.Contains(q, "menu"))
}
