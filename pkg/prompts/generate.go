package prompts

import (
	"encoding/json"
	"fmt"
)

// GenerationPrompts maps a content generation type to its system instruction.
// An unknown type falls back to "custom".
var GenerationPrompts = map[string]string{
	"blog_post": "You are a professional blog writer for a digital agency. Write engaging, well-structured " +
		"blog posts with clear headings, an introduction, body paragraphs, and a conclusion. " +
		"Use a professional yet approachable tone.",
	"social_caption": "You are a social media copywriter. Write short, engaging captions optimised for social " +
		"platforms. Include relevant emoji suggestions and hashtag recommendations.",
	"ad_copy": "You are an advertising copywriter. Write compelling ad copy with strong headlines, " +
		"clear value propositions, and persuasive calls to action.",
	"email_draft": "You are a professional email writer. Draft clear, well-structured emails with " +
		"appropriate greetings, body content, and sign-offs.",
	"seo_description": "You are an SEO specialist. Write optimised meta descriptions and page summaries " +
		"that are compelling for users and effective for search engines. Keep descriptions " +
		"under 160 characters when appropriate.",
	"summary": "You are a skilled summariser. Provide concise, accurate summaries that capture " +
		"the key points and main ideas of the source material.",
	"custom": "You are CCD AI, a versatile writing assistant for a digital agency. " +
		"Follow the user's instructions carefully and produce high-quality content.",
}

// BuildGenerationSystemPrompt resolves the instruction for a generation type
// and appends the optional caller-supplied context.
func BuildGenerationSystemPrompt(generationType string, context map[string]any) string {
	prompt, ok := GenerationPrompts[generationType]
	if !ok {
		prompt = GenerationPrompts["custom"]
	}

	if len(context) > 0 {
		if data, err := json.Marshal(context); err == nil {
			prompt += fmt.Sprintf("\n\nAdditional context: %s", data)
		}
	}

	return prompt
}
