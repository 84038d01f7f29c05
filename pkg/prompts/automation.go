package prompts

import (
	"encoding/json"
	"fmt"
)

// AutomationPrompts maps an automation type to its system instruction.
// An unknown type is rejected by the handler.
var AutomationPrompts = map[string]string{
	"expense_categorization": "You are a financial categorisation assistant. Analyse the following expenses and " +
		"assign each one an appropriate category (e.g., Travel, Office Supplies, Marketing, " +
		"Software, Utilities, Professional Services, etc.). Return a JSON array with each " +
		"expense and its assigned category.",
	"seo_recommendations": "You are an SEO expert. Analyse the following website data and generate actionable " +
		"SEO improvement recommendations. Focus on keyword opportunities, content gaps, " +
		"technical improvements, and backlink strategies. Return structured recommendations.",
	"sentiment_analysis": "You are a brand sentiment analyst. Analyse the following social media comments and " +
		"messages. Classify each as positive, negative, or neutral. Identify key themes and " +
		"flag any urgent negative trends. Return a structured analysis.",
	"deal_scoring": "You are a CRM deal scoring assistant. Analyse the following deal data and score each " +
		"deal from 0-100 based on likelihood to close. Consider factors like engagement " +
		"history, deal size, timeline, and stage progression. Return scores with reasoning.",
	"content_suggestions": "You are a content strategist. Based on the following data about audience engagement, " +
		"trending topics, and existing content, suggest new blog topics, social media posts, " +
		"and marketing campaign ideas. Return structured suggestions with titles and briefs.",
}

// BuildAutomationUserMessage assembles the user message for an automation run
// from the automation type and its configuration.
func BuildAutomationUserMessage(automationType string, config map[string]any) string {
	configText := "{}"
	if len(config) > 0 {
		if data, err := json.Marshal(config); err == nil {
			configText = string(data)
		}
	}

	return fmt.Sprintf(
		"Automation type: %s\nConfiguration: %s\n\n"+
			"Please analyse the available data and provide your results. "+
			"If no specific data is provided in the configuration, generate "+
			"sample recommendations based on common patterns for this type of automation.",
		automationType, configText,
	)
}
