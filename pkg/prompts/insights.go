package prompts

import (
	"fmt"
	"strings"
)

// InsightSystemPrompt is the instruction for insight synthesis. The provider
// is asked for a JSON array of insight objects with a closed type enum.
const InsightSystemPrompt = "You are a business intelligence analyst for a digital agency. " +
	"Given the following data, generate actionable insights as a JSON array. " +
	"Each insight object must have: " +
	`"title" (string, short), "summary" (string, 1-2 sentences), ` +
	`"type" (one of: deal_score, sales_forecast, anomaly_detection, trend_narration, ` +
	"keyword_suggestion, expense_categorization, sentiment_analysis, general), " +
	`"details" (object with supporting data). ` +
	"Return ONLY valid JSON (no markdown fencing). Generate 3-5 insights."

// InsightDataQuery describes the store query backing an insight category.
type InsightDataQuery struct {
	Table  string
	Select string
	Order  string
	Limit  int
}

// InsightDataQueries maps an insight category to the table/column/order/limit
// tuple used to fetch supporting data. Queries are always scoped to the
// caller's tenant by the handler. An unrecognized category proceeds with no
// supporting data.
var InsightDataQueries = map[string]InsightDataQuery{
	"crm": {
		Table:  "deals",
		Select: "id,title,value,stage,probability,expected_close_date",
		Order:  "created_at.desc",
		Limit:  20,
	},
	"finance": {
		Table:  "expenses",
		Select: "id,description,amount,category,date",
		Order:  "date.desc",
		Limit:  30,
	},
	"seo": {
		Table:  "seo_keywords",
		Select: "id,keyword,search_volume,difficulty,current_rank",
		Order:  "created_at.desc",
		Limit:  20,
	},
	"social": {
		Table:  "social_posts",
		Select: "id,platform,content,likes_count,comments_count,shares_count,published_at",
		Order:  "published_at.desc",
		Limit:  20,
	},
	"analytics": {
		Table:  "analytics_events",
		Select: "id,event_name,properties,created_at",
		Order:  "created_at.desc",
		Limit:  50,
	},
}

// Placeholder contexts for the degraded and unknown-category paths.
const (
	InsightDataUnavailable = "Unable to fetch module data - generate general insights instead."
	InsightNoCategoryData  = "No specific data available for this category."
)

// BuildInsightsUserMessage assembles the user message from the category, the
// serialized supporting data (or a placeholder), and optional extra context.
func BuildInsightsUserMessage(category, dataContext, additionalContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n\nData:\n%s", category, dataContext)
	if additionalContext != "" {
		fmt.Fprintf(&b, "\n\nAdditional context: %s", additionalContext)
	}
	return b.String()
}
