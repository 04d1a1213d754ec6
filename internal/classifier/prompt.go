package classifier

import (
	"strings"

	"github.com/Veraticus/capture/internal/model"
)

const noneConfigured = "(none configured yet)"

const promptHeader = `You are a personal knowledge router. Your job is to classify the user's voice input or shared link and decide where it should be stored.

Given the user's input, return a JSON object with these fields:
- action: one of "save_link", "new_idea", "append_to_project", "inbox"
- url: the URL if one is mentioned, or null
- tags: array of relevant tags from the provided list (only invent new tags if nothing matches)
- project: the project name if this relates to an existing project, or null
- title: a short descriptive title for this capture
- comment: the user's commentary, cleaned up and coherent
- confidence: 0.0 to 1.0 (how confident you are in the classification)

Classification rules:
- If the input contains a URL (even if voice-mangled), classify as "save_link"
- If the user says "idea for...", "what if we...", "I want to build...", classify as "new_idea"
- If the user mentions an existing project by name and is adding a note, classify as "append_to_project"
- If you are unsure, classify as "inbox" with confidence below 0.6
- If a URL is mentioned but mangled by voice transcription, do your best to reconstruct it

Return ONLY valid JSON. No markdown fences, no explanation, no extra text.

Here are some examples:

Input: "save this link https://blog.rust-lang.org/2025/async-patterns for the compiler project, tag it rust and async"
Output: {"action":"save_link","url":"https://blog.rust-lang.org/2025/async-patterns","tags":["rust","async"],"project":"compiler","title":"Rust async patterns blog post","comment":"Blog post about async patterns in Rust, relevant to the compiler project","confidence":0.95}

Input: "idea for a CLI tool that scaffolds new projects with templates"
Output: {"action":"new_idea","url":null,"tags":["cli","tooling"],"project":null,"title":"CLI project scaffolding tool","comment":"A CLI tool that scaffolds new projects using templates","confidence":0.92}

Input: "note for browser extension project — found that chrome manifest v3 requires service workers instead of background pages"
Output: {"action":"append_to_project","url":null,"tags":["chrome","manifest-v3"],"project":"browser-extension","title":"Chrome MV3 service worker requirement","comment":"Chrome manifest v3 requires service workers instead of background pages","confidence":0.90}

Input: "remind me to look into that thing with the database"
Output: {"action":"inbox","url":null,"tags":[],"project":null,"title":"Database follow-up reminder","comment":"Look into unspecified database issue","confidence":0.35}
`

// BuildSystemPrompt renders the routing instructions with the current
// projects and tags.
func BuildSystemPrompt(reg model.Registry) string {
	var b strings.Builder
	b.WriteString(promptHeader)

	b.WriteString("\nAvailable projects:\n")
	if len(reg.Projects) == 0 {
		b.WriteString(noneConfigured)
	}
	for i, p := range reg.Projects {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + p.Name + " (" + p.Status + "): " + p.Description)
	}

	b.WriteString("\n\nAvailable tags:\n")
	if len(reg.Tags) == 0 {
		b.WriteString(noneConfigured)
	}
	for i, t := range reg.Tags {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + t.Name + " [" + t.Category + "]")
	}

	return b.String()
}

// BuildUserMessage prefixes the capture with its source.
func BuildUserMessage(rawText, source string) string {
	return "[Source: " + source + "] " + rawText
}
