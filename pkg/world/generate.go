package world

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/locale"
)

const worldGenSystem = `You are a professional TTRPG world designer.
Your job is to produce compact, clean, structured JSON describing a fictional world.

Rules:
- Never include explanations outside the JSON.
- Keep all text concise, vivid, and easy to play in an adventure.
- Keep descriptions no longer than 2-3 sentences each.
- Do not invent new sections not requested.
- Do not add comments, disclaimers, or markdown.`

const worldPromptTemplate = `The user writes in: %s

Create a compact RPG world based on the idea:
"%s"

Output JSON with EXACTLY these keys:
- title
- summary
- locations (list of {name, description}, exactly 3)
- characters (list of {name, role, short_desc}, exactly 3)
- initial_hook
- logic ({tech_level, magic_allowed, tone})

All narrative content must be written in %s.
Keep all sections concise (max 2-3 sentences each).`

const mainQuestPromptTemplate = `Design one clear main quest for this world, summarized in a single sentence.
World:
%s

Requirements:
- One sentence, in %s.
- State only the quest objective, not a plot summary.`

const personalitySystem = `You are a character designer. Output only strict JSON, no prose.`

const personalityPromptTemplate = `For each character below, derive a stable personality from their role and description.

Characters:
%s

Output a JSON object mapping each character name to:
{"traits": ["..."], "speech_style": "..."}

- 2 to 4 traits per character, single words or short phrases.
- speech_style is one short sentence describing how they talk.
- Write in %s. Output only the JSON object.`

func languageName(l locale.Lang) string {
	if locale.Normalize(l) == locale.Chinese {
		return "中文"
	}
	return "English"
}

// generatedWorld is the schema requested from the generator.
type generatedWorld struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Locations []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"locations"`
	Characters []struct {
		Name      string `json:"name"`
		Role      string `json:"role"`
		ShortDesc string `json:"short_desc"`
	} `json:"characters"`
	InitialHook string `json:"initial_hook"`
	Logic       struct {
		TechLevel    string `json:"tech_level"`
		MagicAllowed bool   `json:"magic_allowed"`
		Tone         string `json:"tone"`
	} `json:"logic"`
}

// Generate builds a new world from a one-sentence idea. The generator
// produces the static content; a second call writes the main quest.
// If the world reply carries no parseable JSON, the raw text becomes the
// summary and the world name the title, so creation never hard-fails on
// a sloppy generator.
func Generate(ctx context.Context, gen llm.Generator, idea, name string, lang locale.Lang) (*World, error) {
	lang = locale.Normalize(lang)
	w := New(name, lang)

	prompt := fmt.Sprintf(worldPromptTemplate, languageName(lang), idea, languageName(lang))
	out, err := gen.Generate(ctx, worldGenSystem, prompt, llm.Options{MaxTokens: 1200, Temperature: 0.8})
	if err != nil {
		return nil, fmt.Errorf("world generation failed: %w", err)
	}

	if raw, ok := llm.ExtractJSONObject(out); ok {
		var gw generatedWorld
		if jsonErr := json.Unmarshal(raw, &gw); jsonErr == nil {
			applyGenerated(w, &gw)
		} else {
			w.Title = name
			w.Summary = strings.TrimSpace(out)
		}
	} else {
		w.Title = name
		w.Summary = strings.TrimSpace(out)
	}
	if w.Title == "" {
		w.Title = name
	}

	worldJSON, _ := json.Marshal(w)
	questPrompt := fmt.Sprintf(mainQuestPromptTemplate, string(worldJSON), languageName(lang))
	quest, err := gen.Generate(ctx, worldGenSystem, questPrompt, llm.Options{MaxTokens: 600, Temperature: 0.8})
	if err != nil {
		return nil, fmt.Errorf("main quest generation failed: %w", err)
	}
	w.MainQuest = strings.TrimSpace(quest)

	return w, nil
}

func applyGenerated(w *World, gw *generatedWorld) {
	w.Title = strings.TrimSpace(gw.Title)
	w.Summary = strings.TrimSpace(gw.Summary)
	w.Hook = strings.TrimSpace(gw.InitialHook)
	w.Logic = Logic{
		TechLevel:    gw.Logic.TechLevel,
		MagicAllowed: gw.Logic.MagicAllowed,
		Tone:         gw.Logic.Tone,
	}
	for _, loc := range gw.Locations {
		if loc.Name == "" {
			continue
		}
		w.Locations = append(w.Locations, Location{Name: loc.Name, Description: loc.Description})
	}
	for _, ch := range gw.Characters {
		if ch.Name == "" {
			continue
		}
		w.Characters = append(w.Characters, Character{
			Name:        ch.Name,
			Role:        ch.Role,
			Description: ch.ShortDesc,
			Health:      100,
		})
	}
}

// DerivePersonalities fills in each character's personality record from
// role and description, once. Characters that already have a personality
// are left alone. Generator failure falls back to a deterministic
// heuristic so the roster is never left without voices.
func DerivePersonalities(ctx context.Context, gen llm.Generator, w *World) {
	var missing []Character
	for _, c := range w.Characters {
		if c.Personality == nil {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return
	}

	var sb strings.Builder
	for _, c := range missing {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", c.Name, c.Role, c.Description)
	}
	prompt := fmt.Sprintf(personalityPromptTemplate, sb.String(), languageName(w.Lang))

	derived := map[string]Personality{}
	out, err := gen.Generate(ctx, personalitySystem, prompt, llm.Options{MaxTokens: 800, Temperature: 0.7})
	if err == nil {
		if raw, ok := llm.ExtractJSONObject(out); ok {
			_ = json.Unmarshal(raw, &derived)
		}
	}

	for i := range w.Characters {
		c := &w.Characters[i]
		if c.Personality != nil {
			continue
		}
		if p, ok := derived[c.Name]; ok && (len(p.Traits) > 0 || p.SpeechStyle != "") {
			pc := p
			c.Personality = &pc
			continue
		}
		c.Personality = heuristicPersonality(c)
	}
}

// heuristicPersonality derives a plain personality from role keywords.
func heuristicPersonality(c *Character) *Personality {
	role := strings.ToLower(c.Role)
	p := &Personality{
		Traits:      []string{"steady"},
		SpeechStyle: "speaks plainly and directly",
	}
	switch {
	case strings.Contains(role, "merchant"), strings.Contains(role, "trader"):
		p.Traits = []string{"shrewd", "talkative"}
		p.SpeechStyle = "haggles through every sentence"
	case strings.Contains(role, "guard"), strings.Contains(role, "soldier"), strings.Contains(role, "captain"):
		p.Traits = []string{"disciplined", "blunt"}
		p.SpeechStyle = "short clipped sentences, no pleasantries"
	case strings.Contains(role, "scholar"), strings.Contains(role, "sage"), strings.Contains(role, "wizard"), strings.Contains(role, "mage"):
		p.Traits = []string{"curious", "pedantic"}
		p.SpeechStyle = "lectures, with precise vocabulary"
	case strings.Contains(role, "thief"), strings.Contains(role, "rogue"), strings.Contains(role, "smuggler"):
		p.Traits = []string{"evasive", "quick-witted"}
		p.SpeechStyle = "never answers a question straight"
	case strings.Contains(role, "priest"), strings.Contains(role, "oracle"), strings.Contains(role, "monk"):
		p.Traits = []string{"serene", "cryptic"}
		p.SpeechStyle = "speaks in measured, ceremonial phrases"
	}
	return p
}
