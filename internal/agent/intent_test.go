package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUploadShortCircuits(t *testing.T) {
	// An upload keyword wins regardless of other content.
	queries := []string{
		"upload my menu",
		"please process pdf for Chef India",
		"extract menu and tell me which items to discount",
		"analyze pdf with food safety in mind",
	}
	for _, q := range queries {
		assert.Equal(t, IntentPDFExtraction, Classify(q).Intent, "query: %s", q)
	}
}

func TestClassifyBusinessNeedsMenuReference(t *testing.T) {
	assert.Equal(t, IntentBusinessOps,
		Classify("What items should I discount, my chicken is expiring").Intent)
	assert.Equal(t, IntentBusinessOps,
		Classify("which menu dishes should I promote this week").Intent)

	// A business keyword alone, without a menu reference, is general.
	assert.Equal(t, IntentGeneralQuery, Classify("should i expand to a second location").Intent)
}

func TestClassifyBusinessBeatsCompliance(t *testing.T) {
	// The business rule runs before the compliance rule; a query
	// carrying both kinds of keywords resolves to business_operations.
	q := "which menu items should I discount to stay haccp compliant"
	assert.Equal(t, IntentBusinessOps, Classify(q).Intent)
}

func TestClassifyCompliance(t *testing.T) {
	assert.Equal(t, IntentMenuCompliance,
		Classify("how can I make my menu haccp compliant").Intent)
	assert.Equal(t, IntentMenuCompliance,
		Classify("check my menu for food safety issues").Intent)
}

func TestClassifyIngredientRoutesToBusiness(t *testing.T) {
	assert.Equal(t, IntentBusinessOps,
		Classify("do any dishes contain salmon").Intent)
}

func TestClassifySearchMenu(t *testing.T) {
	assert.Equal(t, IntentSearchMenu, Classify("what do you serve").Intent)
	assert.Equal(t, IntentSearchMenu, Classify("how much is the cheapest dish").Intent)
}

func TestClassifyListMenus(t *testing.T) {
	// "list" plus "restaurant" without any menu keyword.
	assert.Equal(t, IntentListMenus, Classify("list every restaurant you know").Intent)
}

func TestClassifyDefaultsToGeneral(t *testing.T) {
	cls := Classify("what's the weather like today")
	assert.Equal(t, IntentGeneralQuery, cls.Intent)
	assert.Equal(t, "what's the weather like today", cls.Query)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, IntentPDFExtraction, Classify("UPLOAD my MENU").Intent)
	assert.Equal(t, IntentBusinessOps, Classify("Which ITEMS should I Discount?").Intent)
}
