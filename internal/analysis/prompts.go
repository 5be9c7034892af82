// Package analysis builds the content-strategy prompts, runs them through an LLM client
// and renders the resulting reports.
package analysis

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lifetrack/internal/llm"
	"github.com/julianstephens/lifetrack/internal/models"
)

// Principles are the fifteen criteria every analysis scores content against.
var Principles = []string{
	"Clear audience specificity",
	"One strong idea per content piece",
	"Clarity over cleverness",
	"Emotional hook strength",
	"Contrarian or curiosity-driven framing",
	"Fast pacing over production quality",
	"Pattern interrupts every 3–5 seconds",
	"Calm authority over hype",
	"Storytelling or example anchoring",
	"Specificity and proof signals",
	"Relatability and shared pain",
	"Teaching over flexing",
	"Consistent format and repetition",
	"Strong ending that drives next action",
	"Trust-based lead alignment",
}

func numbered(items []string) string {
	var b strings.Builder
	for i, p := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, p)
	}
	return b.String()
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// StrategicPrompt asks for a five-section authority analysis of one content item,
// framed by the user's positioning and audience.
func StrategicPrompt(item models.BrandingContentItem, pos models.BrandingPositioning, aud models.AudienceIntelligence) []llm.Message {
	themes := make([]string, 0, len(pos.CoreThemes))
	for _, t := range pos.CoreThemes {
		themes = append(themes, t.Text)
	}
	pains := aud.RecurringPainPoints
	if len(pains) > 3 {
		pains = pains[:3]
	}

	system := `You are a World-Class Personal Branding & Authority Strategist.
Your role is to deconstruct content using the Authority-Building System.
You focus on turning content into "Teaching Assets" that build extreme trust and authority.

STRATEGIC CONTEXT:
User positioning: ` + orDefault(pos.KnownFor, "General Authority") + `
Core Themes: ` + joinOr(themes, "Not specified") + `
What they are NOT: ` + joinOr(pos.AntiThemes, "Not specified") + `
Target Audience: ` + joinOr(aud.TopSegments, "General") + `
Recurring Pain Points: ` + joinOr(aud.RecurringPainPoints, "Not specified") + `

Analyze the content based on the following 15 Core Principles:
` + numbered(Principles) + `

CLASSIFICATION RULES:
- Classify Intent as: Authority, Trust, Relatability, Teaching, or Lead Generation.
- Evaluate Conversion Path: Newsletter, Lead, Teaching Asset, or None.

OUTPUT FORMAT (STRICTLY FOLLOW):
SECTION A — Executive Summary
- Overall Authority Score (0–100)
- Virality Potential (0–100)
- Content Classification [Authority/Trust/Relatability/Teaching/Lead Gen]
- Conversion Path Alignment [Score 0-100]
- Biggest Strategic Opportunity (1 sentence)

SECTION B — Structural Deconstruction
- The Hook: [Does it interrupt the pattern? Analysis]
- The Authority Signal: [Where is the proof/expertise? Analysis]
- The Teaching Bridge: [How does it solve a pain point? Analysis]
- The CTA / Path: [Is the conversion path clear?]

SECTION C — 15-Point Principle Audit
[Detailed evaluation for each principle with Status and Action]

SECTION D — Authority Upgrades
[Specific edits to increase "Known For" association]

SECTION E — Strategic Implementation Checklist`

	user := `CONTENT TO ANALYZE:
Title: ` + item.Title + `
Body: ` + item.Body + `
Intent: ` + string(item.Intent) + `
Conversion Path: ` + string(item.ConversionPath) + `

ANALYSIS GOAL:
- Maximize Authority association
- Ensure alignment with "Known For" (` + pos.KnownFor + `)
- Verify if it solves a recurring pain point: ` + strings.Join(pains, ", ")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}

// ComparisonPrompt asks how the user's content (a) measures up against a creator's (b).
func ComparisonPrompt(a, b string) []llm.Message {
	system := `You are a World-Class Content Strategist. Your goal is to perform a deep comparative analysis between two pieces of content using the "15 Core Virality & Authority Principles".

15 Core Principles:
` + numbered(Principles) + `

OUTPUT FORMAT (STRICTLY FOLLOW):
SECTION A — High-Level Strategy Contrast: Provide a clear table-style contrast of the core strategy.
SECTION B — Principle-by-Principle Comparison: Compare both pieces across all 15 principles.
SECTION C — Strategic Gaps: Identify exactly where Content B wins and why.
SECTION D — Replication Without Copying: Extract the underlying structural patterns of Content B for use in Content A.
SECTION E — Personalized Upgrade Plan: 5-step actionable plan to upgrade Content A.

Focus on strategy, structure, positioning, and intent. Avoid surface-level style only.`

	user := "CONTENT A (User Content):\n---\n" + a + "\n---\n\nCONTENT B (Creator Content):\n---\n" + b +
		"\n---\n\nPerform the Strategic Comparison."

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}
