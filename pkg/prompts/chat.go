// Package prompts holds the static system-instruction registries used by the
// request handlers. Each registry is a closed vocabulary mapping a
// request-supplied key to an instruction string, so the instruction set is
// auditable and testable independently of request handling.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ModuleSystemPrompts maps a chat module context to its system instruction.
var ModuleSystemPrompts = map[string]string{
	"crm": "You are a CRM assistant for a digital agency. Help with client relationships, " +
		"sales pipeline management, deal tracking, and contact management. " +
		"Provide actionable advice on closing deals and nurturing leads.",
	"analytics": "You are an analytics assistant. Help interpret marketing and business metrics, " +
		"identify trends, explain anomalies, and suggest data-driven actions.",
	"content": "You are a content strategy assistant. Help plan, create, and optimise marketing content " +
		"including blog posts, social media captions, email campaigns, and ad copy.",
	"seo": "You are an SEO specialist assistant. Help with keyword research, on-page optimisation, " +
		"technical SEO audits, and search ranking strategies.",
	"social": "You are a social media management assistant. Help plan posting schedules, " +
		"craft engaging posts, analyse engagement metrics, and grow audience reach.",
	"finance": "You are a finance assistant for a digital agency. Help with invoicing, expense tracking, " +
		"budget analysis, revenue forecasting, and financial reporting.",
	"projects": "You are a project management assistant. Help with task planning, sprint management, " +
		"resource allocation, timeline estimation, and workflow optimisation.",
	"hr": "You are an HR assistant. Help with employee management, recruitment, onboarding, " +
		"leave tracking, and team coordination.",
}

// DefaultSystemPrompt is used when the module context is absent or unknown.
const DefaultSystemPrompt = "You are CCD AI, an intelligent assistant for the Crane & Ceeshar Digital agency platform. " +
	"You help agency staff with CRM, analytics, content, SEO, social media, projects, finance, " +
	"and HR tasks. Be concise, professional, and actionable in your responses."

// EntityContext is optional caller-supplied structured context for a chat.
type EntityContext struct {
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	EntityData map[string]any `json:"entity_data,omitempty"`
}

// BuildChatSystemPrompt resolves the module instruction (default for an
// unknown or absent context) and appends the entity context when supplied.
func BuildChatSystemPrompt(moduleContext string, entity *EntityContext) string {
	base, ok := ModuleSystemPrompts[moduleContext]
	if !ok {
		base = DefaultSystemPrompt
	}
	if entity == nil {
		return base
	}

	var b strings.Builder
	b.WriteString(base)

	entityType := entity.EntityType
	if entityType == "" {
		entityType = "unknown"
	}
	entityID := entity.EntityID
	if entityID == "" {
		entityID = "N/A"
	}
	fmt.Fprintf(&b, "\n\nCurrent context - Entity type: %s, Entity ID: %s.", entityType, entityID)

	if len(entity.EntityData) > 0 {
		if data, err := json.Marshal(entity.EntityData); err == nil {
			fmt.Fprintf(&b, "\nEntity data: %s", data)
		}
	}

	return b.String()
}
