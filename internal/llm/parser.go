package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/NCpython/smartchefbot/internal/menu"
)

// The model does not reliably follow the requested output format, so
// the reply goes through an ordered chain of parser attempts that
// stops at the first success and never fails:
//
//  1. fenced ```json block
//  2. the whole reply as a JSON array
//  3. pipe-delimited "Item: x | Price: y | Description: z" lines
//  4. currency-amount scan of the original input text
//
// The worst case is an empty item list.

var (
	priceRe     = regexp.MustCompile(`€?\s*(\d+(?:\.\d{2})?)`)
	euroLineRe  = regexp.MustCompile(`€\s*(\d+(?:\.\d{2})?)`)
	fencedJSON  = "```json"
	fencedClose = "```"
)

// ParseMenuReply extracts menu items from an LLM reply. originalText is
// the raw menu text the prompt was built from; it feeds the last-resort
// scan and may be empty for direct-PDF extraction.
func ParseMenuReply(reply, originalText string) []menu.Item {
	if items, ok := parseFencedJSON(reply); ok {
		return items
	}
	if items, ok := parseDirectJSON(reply); ok {
		return items
	}
	if items := parsePipeFormat(reply); len(items) > 0 {
		return items
	}
	return scanForPrices(originalText)
}

func parseFencedJSON(reply string) ([]menu.Item, bool) {
	start := strings.Index(reply, fencedJSON)
	if start < 0 {
		return nil, false
	}
	start += len(fencedJSON)

	end := strings.Index(reply[start:], fencedClose)
	if end < 0 {
		return nil, false
	}

	return decodeItems(strings.TrimSpace(reply[start : start+end]))
}

func parseDirectJSON(reply string) ([]menu.Item, bool) {
	return decodeItems(strings.TrimSpace(reply))
}

// decodeItems tolerates loosely-typed JSON: prices may come back as
// numbers even though we asked for strings.
func decodeItems(text string) ([]menu.Item, bool) {
	var raw []map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}

	items := make([]menu.Item, 0, len(raw))
	for _, entry := range raw {
		item := menu.Item{
			Name:        stringField(entry, "name"),
			Price:       stringField(entry, "price"),
			Description: stringField(entry, "description"),
			Category:    stringField(entry, "category"),
		}
		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	return items, true
}

func stringField(entry map[string]any, key string) string {
	v, ok := entry[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(v)
	}
}

func parsePipeFormat(reply string) []menu.Item {
	items := []menu.Item{}

	for _, line := range strings.Split(reply, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		if !strings.Contains(line, "Item:") && !strings.Contains(line, "Price:") {
			continue
		}

		var item menu.Item
		for _, part := range strings.Split(line, "|") {
			part = strings.TrimSpace(part)
			switch {
			case strings.HasPrefix(part, "Item:"):
				item.Name = strings.TrimSpace(strings.TrimPrefix(part, "Item:"))
			case strings.HasPrefix(part, "Price:"):
				priceStr := strings.TrimSpace(strings.TrimPrefix(part, "Price:"))
				if m := priceRe.FindStringSubmatch(priceStr); m != nil {
					item.Price = "€" + m[1]
				}
			case strings.HasPrefix(part, "Description:"):
				item.Description = strings.TrimSpace(strings.TrimPrefix(part, "Description:"))
			}
		}

		if item.Name != "" {
			items = append(items, item)
		}
	}
	return items
}

// scanForPrices is the last-resort extraction over the original menu
// text: any line carrying a euro amount splits at the match into
// name (before) and description (after).
func scanForPrices(text string) []menu.Item {
	items := []menu.Item{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		loc := euroLineRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}

		name := strings.TrimSpace(line[:loc[0]])
		if name == "" {
			continue
		}

		item := menu.Item{
			Name:  name,
			Price: "€" + line[loc[2]:loc[3]],
		}
		if description := strings.TrimSpace(line[loc[1]:]); description != "" {
			item.Description = description
		}
		items = append(items, item)
	}
	return items
}
