package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NCpython/smartchefbot/internal/menu"
)

func TestParseFencedJSONBlock(t *testing.T) {
	reply := "Here is the menu you asked for:\n" +
		"```json\n" +
		`[{"name": "Dal Fry", "price": "€7.00", "description": "yellow lentils", "category": "Mains"}]` +
		"\n```\nLet me know if you need anything else."

	items := ParseMenuReply(reply, "")

	require.Len(t, items, 1)
	assert.Equal(t, menu.Item{
		Name:        "Dal Fry",
		Price:       "€7.00",
		Description: "yellow lentils",
		Category:    "Mains",
	}, items[0])
}

func TestParseWholeReplyAsJSONArray(t *testing.T) {
	reply := `[{"name": "Naan", "price": "€2.50"}, {"name": "Raita", "price": "€3.00"}]`

	items := ParseMenuReply(reply, "")

	require.Len(t, items, 2)
	assert.Equal(t, "Naan", items[0].Name)
	assert.Equal(t, "Raita", items[1].Name)
}

func TestParseJSONCoercesNumericPrices(t *testing.T) {
	reply := `[{"name": "Naan", "price": 2.5}, {"name": "Raita", "price": 3}]`

	items := ParseMenuReply(reply, "")

	require.Len(t, items, 2)
	assert.Equal(t, "2.50", items[0].Price)
	assert.Equal(t, "3", items[1].Price)
}

func TestParseJSONSkipsNamelessEntries(t *testing.T) {
	reply := `[{"price": "€1.00"}, {"name": "Naan", "price": "€2.50"}]`

	items := ParseMenuReply(reply, "")

	require.Len(t, items, 1)
	assert.Equal(t, "Naan", items[0].Name)
}

func TestParsePipeFormatLines(t *testing.T) {
	reply := "Sure, here are the items I found:\n" +
		"Item: Butter Chicken | Price: €12.90 | Description: creamy tomato curry\n" +
		"Item: Garlic Naan | Price: 3.50\n" +
		"This menu has 2 items in total."

	items := ParseMenuReply(reply, "")

	require.Len(t, items, 2)
	assert.Equal(t, menu.Item{
		Name:        "Butter Chicken",
		Price:       "€12.90",
		Description: "creamy tomato curry",
	}, items[0])
	// Prices get normalized to the euro prefix even when the model
	// leaves the symbol out.
	assert.Equal(t, "€3.50", items[1].Price)
}

func TestParsePipeFormatIgnoresNamelessLines(t *testing.T) {
	reply := "Price: €4.00 | Description: no name on this line"

	items := ParseMenuReply(reply, "no prices here either")

	assert.Empty(t, items)
}

func TestParseFallsBackToPriceScanOfOriginalText(t *testing.T) {
	reply := "I could not find any structured menu data in this document."
	original := "STARTERS\n" +
		"Soup  €5.50 hot and fresh\n" +
		"just a note without a price\n" +
		"Bruschetta €6.00"

	items := ParseMenuReply(reply, original)

	require.Len(t, items, 2)
	assert.Equal(t, menu.Item{
		Name:        "Soup",
		Price:       "€5.50",
		Description: "hot and fresh",
	}, items[0])
	assert.Equal(t, menu.Item{Name: "Bruschetta", Price: "€6.00"}, items[1])
}

func TestParsePriceScanSkipsLinesWithoutName(t *testing.T) {
	items := ParseMenuReply("no structure", "€9.99\nGood Dish €9.99")

	require.Len(t, items, 1)
	assert.Equal(t, "Good Dish", items[0].Name)
}

func TestParseEmptyJSONArrayStopsTheChain(t *testing.T) {
	// A valid empty array is a successful parse; the scan of the
	// original text must not run.
	items := ParseMenuReply("[]", "Soup €5.50")

	assert.Empty(t, items)
}

func TestParseEverythingFailsReturnsEmpty(t *testing.T) {
	items := ParseMenuReply("sorry, I can't help with that", "plain text, no amounts")

	assert.Empty(t, items)
}
