package extract

import (
	"regexp"
	"strings"
)

// maxCleanLength bounds the text handed to the LLM. Menus run well
// under this; anything longer is scanned PDF noise.
const maxCleanLength = 15000

var noiseLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*page\s*\d+\s*$`),
	regexp.MustCompile(`(?i)^\s*\d+\s*/\s*\d+\s*$`),
	regexp.MustCompile(`^\s*\d+\s*$`),
	regexp.MustCompile(`(?i)^\s*confidential\s*$`),
	regexp.MustCompile(`(?i)^\s*menu\s*$`),
}

var priceOnlyRe = regexp.MustCompile(`^[₹$€£]?\d*\.?\d+$`)

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

var artifacts = []string{
	"��", "�",
	"http://", "https://",
	"©", "™", "®",
}

// Clean normalizes extracted PDF text before it reaches the LLM:
// page numbers and repeated headers go, whitespace collapses, common
// extraction artifacts are stripped, and the result is truncated at a
// paragraph boundary.
func Clean(rawText string) string {
	if rawText == "" {
		return rawText
	}

	text := removeNoiseLines(rawText)
	text = normalizeWhitespace(text)
	text = removeArtifacts(text)
	return truncate(text)
}

func removeNoiseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isNoise(trimmed) {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

func isNoise(trimmed string) bool {
	for _, pattern := range noiseLinePatterns {
		if pattern.MatchString(trimmed) {
			return true
		}
	}
	// Very short lines are usually noise unless they look like a price.
	if trimmed != "" && len(trimmed) < 3 && !priceOnlyRe.MatchString(trimmed) {
		return true
	}
	return false
}

func normalizeWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func removeArtifacts(text string) string {
	for _, artifact := range artifacts {
		text = strings.ReplaceAll(text, artifact, "")
	}
	return text
}

func truncate(text string) string {
	if len(text) <= maxCleanLength {
		return text
	}

	truncated := text[:maxCleanLength]
	if idx := strings.LastIndex(truncated, "\n\n"); idx > maxCleanLength/2 {
		truncated = truncated[:idx]
	}
	return truncated
}
