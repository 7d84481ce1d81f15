package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"healthfeed/types"
)

// Summary is the structured summary attached to an enriched article:
// a short TL;DR plus exactly three key takeaways.
type Summary struct {
	TLDR         string   `json:"tldr"`
	KeyTakeaways []string `json:"keyTakeaways"`
}

const summarizePromptFormat = `Analyze this health news article and create a crisp, professional medical summary.

Article Title: %s
Article Content: %s

Create a concise summary with:
1. A crisp 1-2 sentence TL;DR that captures the core medical finding or health implication
2. Three sharp, bullet-point key takeaways that highlight the most important medical insights

Requirements:
- Keep TL;DR to 1-2 sentences maximum
- Make key takeaways concise but informative (1-2 lines each)
- Use precise medical terminology
- Focus on the most critical medical information
- Avoid filler words and generic statements
- Maintain professional medical tone

Format as JSON:
{
  "tldr": "Crisp 1-2 sentence summary of the core medical finding or health implication",
  "keyTakeaways": [
    "Concise medical insight or finding",
    "Key health implication or recommendation",
    "Important medical fact or research conclusion"
  ]
}`

const simplifyPromptFormat = `Please rewrite this health news article in a professional, accessible tone for a general audience.

Article Title: %s
Article Content: %s

Requirements:
- Use professional medical news writing style
- Explain complex medical terms in clear, accessible language
- Maintain factual accuracy and medical credibility
- Avoid casual language, emojis, or overly conversational tone
- Structure content with clear paragraphs and logical flow
- Focus on medical facts, implications, and evidence-based information
- Keep the tone informative and authoritative but accessible

Return the rewritten article as plain text.`

// parseFallbackSummary is returned when the model answered but its output
// contained no decodable JSON block.
func parseFallbackSummary() Summary {
	return Summary{
		TLDR: "AI processing in progress. Summary will be available shortly.",
		KeyTakeaways: []string{
			"Content analysis underway",
			"Medical insights being extracted",
			"Summary generation pending",
		},
	}
}

// callFallbackSummary is returned when the generation call itself failed.
func callFallbackSummary() Summary {
	return Summary{
		TLDR: "Summary unavailable. Manual review required.",
		KeyTakeaways: []string{
			"Content requires manual review",
			"Technical processing limited",
			"Consult healthcare professionals",
		},
	}
}

// quotaFallbackSummary is bulk-applied by the batch workflow to articles
// left unprocessed after a rate-limit stop.
func quotaFallbackSummary() Summary {
	return Summary{
		TLDR: "AI processing temporarily unavailable due to rate limits. Content available for manual review.",
		KeyTakeaways: []string{
			"Medical content requires professional interpretation",
			"AI processing will resume when rate limits reset",
			"Consult healthcare professionals for guidance",
		},
	}
}

// itemFallbackSummary is applied by the batch workflow to a single article
// whose generation call failed for a non-quota reason.
func itemFallbackSummary() Summary {
	return Summary{
		TLDR: "AI processing encountered technical limitations for this article. The content is available for manual review and analysis.",
		KeyTakeaways: []string{
			"This health article contains information that requires manual review due to processing limitations",
			"The medical content should be evaluated by qualified healthcare professionals",
			"Technical processing will be retried automatically during the next update cycle",
		},
	}
}

// TitleFallbackSummary is the last-resort payload for the on-demand
// enrichment path, built from the article title so it is never empty.
func TitleFallbackSummary(a types.Article) Summary {
	return Summary{
		TLDR: fmt.Sprintf("Health news: %s. This article discusses important health-related information that requires professional medical interpretation.", a.Title),
		KeyTakeaways: []string{
			"This article contains health information that should be evaluated by qualified medical professionals",
			"The findings and implications discussed may have relevance to public health awareness",
			"Readers are advised to consult healthcare providers for personalized medical guidance",
		},
	}
}

// SimplifyFallback wraps the complete original content in an apology so no
// information is lost when the rewrite is unavailable.
func SimplifyFallback(content string) string {
	return fmt.Sprintf("We're having trouble processing this article right now. Please try again later. The original article content is: %s", content)
}

// Engine turns articles into summaries and simplified rewrites through a
// TextGenerator. Its exported operations never return an error: failures
// degrade to fallback content distinguishable only by its wording.
type Engine struct {
	gen TextGenerator
}

// NewEngine returns an engine backed by gen.
func NewEngine(gen TextGenerator) *Engine {
	return &Engine{gen: gen}
}

// trySummarize is the error-propagating variant used by the batch workflow,
// which needs to see rate-limit failures. A generation failure comes back
// as an error; an unparseable response degrades to the parse fallback.
func (e *Engine) trySummarize(ctx context.Context, a types.Article) (Summary, error) {
	prompt := fmt.Sprintf(summarizePromptFormat, a.Title, a.Content)

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return Summary{}, err
	}

	block, ok := extractJSONBlock(text)
	if !ok {
		return parseFallbackSummary(), nil
	}

	var summary Summary
	if err := json.Unmarshal([]byte(block), &summary); err != nil || summary.TLDR == "" {
		log.Printf("unparseable summary response: %v", err)
		return parseFallbackSummary(), nil
	}
	return summary, nil
}

// Summarize produces the structured summary for one article. It always
// returns a well-formed payload.
func (e *Engine) Summarize(ctx context.Context, a types.Article) Summary {
	summary, err := e.trySummarize(ctx, a)
	if err != nil {
		log.Printf("summarize failed for %q: %v", a.Title, err)
		return callFallbackSummary()
	}
	return summary
}

// Simplify rewrites the article in accessible professional prose. On
// failure it returns a fallback embedding the original content verbatim.
func (e *Engine) Simplify(ctx context.Context, a types.Article) string {
	prompt := fmt.Sprintf(simplifyPromptFormat, a.Title, a.Content)

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("simplify failed for %q: %v", a.Title, err)
		return SimplifyFallback(a.Content)
	}
	return text
}

// extractJSONBlock returns the first balanced brace-delimited block in
// text, which models often surround with prose or code fences.
func extractJSONBlock(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return "", false
}
