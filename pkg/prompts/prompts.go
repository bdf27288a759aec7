// Package prompts holds every instruction template sent to the generator,
// and the builder that assembles the per-turn event prompt.
package prompts

import (
	"fmt"

	"github.com/jwright-games/worldweaver/pkg/locale"
)

// DMSystem is the narrator-facing system prompt.
const DMSystem = `You are a professional TTRPG Dungeon Master.
Your task is to narrate scenes and present clear, meaningful choices.

General Rules:
- Do NOT use speaker labels ("DM:" "Player:" etc.).
- Write short, tight narrative paragraphs (2-4 sentences).
- Always maintain consistency with world facts and the main quest.
- Keep pacing dynamic: each round must progress the story.
- Avoid lists except for numbered action options.
- Never explain rules or meta-thought.`

// EventSystem is the system prompt for structured event turns.
const EventSystem = `You are a state machine.
Your ONLY job is to output strict JSON based on a template.
You MUST NOT output narrative outside JSON fields.
Never add any text outside the JSON.`

// ChroniclerSystem fronts the adventure-summary call.
const ChroniclerSystem = `You are an expert RPG chronicler who writes evocative summaries.`

const openingSceneTemplate = `Use %s.
Based strictly on this world:
%s

Generate the opening scene of a short adventure.
Rules:
- 2-4 vivid sentences, no more.
- Must directly reference the world's summary, locations, or characters.
- End with EXACTLY 3 action options in numbered form:
1. ...
2. ...
3. ...`

const finaleTemplate = `Use %s.
The adventure has reached its end. Write the finale now.

World:
%s

What has happened so far:
%s

Already-revealed story elements (the ONLY lore you may draw on):
%s

Rules:
- Resolve the main quest using ONLY elements already present above.
- Do NOT invent new characters, locations, or lore.
- 1-2 short paragraphs, then a closing line.
- Do NOT offer any options.`

const summaryTemplate = `Summarize the following adventure as a narrative recap, highlighting key plot points and important characters. Write in %s.

%s`

// LanguageName renders the language instruction used across prompts.
func LanguageName(l locale.Lang) string {
	if locale.Normalize(l) == locale.Chinese {
		return "中文"
	}
	return "English"
}

// OpeningScenePrompt builds the user prompt for the opening turn.
// worldJSON is the serialized world.
func OpeningScenePrompt(lang locale.Lang, worldJSON string) string {
	return fmt.Sprintf(openingSceneTemplate, LanguageName(lang), worldJSON)
}

// FinalePrompt builds the terminal-turn prompt. It is constrained to
// elements already present in the history and the disclosed-lore list.
func FinalePrompt(lang locale.Lang, worldJSON, historyText, infoGiven string) string {
	if infoGiven == "" {
		infoGiven = "(none recorded)"
	}
	return fmt.Sprintf(finaleTemplate, LanguageName(lang), worldJSON, historyText, infoGiven)
}

// SummaryPrompt builds the chronicler recap prompt over the full history.
func SummaryPrompt(lang locale.Lang, historyText string) string {
	return fmt.Sprintf(summaryTemplate, LanguageName(lang), historyText)
}
