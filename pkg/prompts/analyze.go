package prompts

import (
	"fmt"
	"strings"
)

// AnalysisPrompts maps an analysis kind to its instruction fragment.
// A request may combine several kinds in one call; unrecognized kinds are
// dropped from the instruction.
var AnalysisPrompts = map[string]string{
	"sentiment": `"sentiment": classify the overall sentiment of the text as "positive", "negative", or "neutral", ` +
		`with a "confidence" score between 0 and 1 and a short "explanation"`,
	"summary": `"summary": a concise summary of the text in at most three sentences`,
	"categorize": `"categorize": the most fitting content category for the text (e.g. marketing, finance, ` +
		`support, product feedback) with a short "reason"`,
	"keywords": `"keywords": an array of the 5-10 most relevant keywords or key phrases in the text`,
}

// BuildAnalysisSystemPrompt assembles the instruction for the recognized
// subset of the requested analysis kinds, asking the provider for one JSON
// object carrying exactly those keys. The recognized subset is returned in
// request order; an empty subset means no requested kind is recognized.
func BuildAnalysisSystemPrompt(kinds []string) (string, []string) {
	var recognized []string
	var fragments []string
	for _, kind := range kinds {
		fragment, ok := AnalysisPrompts[kind]
		if !ok {
			continue
		}
		recognized = append(recognized, kind)
		fragments = append(fragments, "- "+fragment)
	}

	if len(recognized) == 0 {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"You are a text analysis assistant. Analyse the user's text and return ONLY a single valid JSON object "+
			"(no markdown fencing, no commentary) with exactly these top-level keys: %s.\n\n%s",
		strings.Join(recognized, ", "),
		strings.Join(fragments, "\n"),
	)

	return prompt, recognized
}
