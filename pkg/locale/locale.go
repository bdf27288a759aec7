package locale

// Lang selects the language for player-visible engine strings.
// Narrative text comes from the generator in whatever language the
// world was created with; these tables only cover the fixed strings
// the engine substitutes itself.
type Lang string

const (
	English Lang = "en"
	Chinese Lang = "zh"
)

// StartSentinel is the player field of the opening turn.
const StartSentinel = "(start)"

// FinaleSentinel is the player field of the terminal turn.
const FinaleSentinel = "(finale)"

var fallbackOpeningOptions = map[Lang][]string{
	English: {"Keep exploring", "Investigate a character", "Head to an unknown place"},
	Chinese: {"继续探索", "调查角色", "前往未知地点"},
}

var fallbackEventText = map[Lang]string{
	English: "The moment blurs and settles. The adventure continues.",
	Chinese: "事件生成失败，但冒险仍在继续。",
}

var fallbackFinaleText = map[Lang]string{
	English: "The threads of the story draw together, and the adventure reaches its end.",
	Chinese: "故事的线索汇聚在一起，冒险迎来了终局。",
}

var fallbackEventOptions = map[Lang][]string{
	English: {"Keep exploring", "Look around", "Stay alert", "Write in your journal", "Take a rest"},
	Chinese: {"继续探索", "环顾四周", "保持警惕", "记日记", "休息一下"},
}

var pdfLabels = map[string]map[Lang]string{
	"summary": {English: "Summary", Chinese: "世界简介"},
	"quest":   {English: "Main Quest", Chinese: "主线任务"},
	"roster":  {English: "Main Characters", Chinese: "主要角色"},
	"log":     {English: "Adventure Log", Chinese: "冒险记录"},
	"player":  {English: "Player", Chinese: "玩家"},
	"dm":      {English: "DM", Chinese: "DM"},
	"round":   {English: "Round", Chinese: "回合"},
}

// Normalize maps unknown language tags to English.
func Normalize(l Lang) Lang {
	if l == Chinese {
		return Chinese
	}
	return English
}

// FallbackOpeningOptions is the fixed option triple used when the
// opening scene yields no parseable numbered options.
func FallbackOpeningOptions(l Lang) []string {
	opts := fallbackOpeningOptions[Normalize(l)]
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// FallbackEventText is the narrator text of the substitute event used
// when the generator fails or returns an unusable reply.
func FallbackEventText(l Lang) string {
	return fallbackEventText[Normalize(l)]
}

// FallbackFinaleText is the narrator text of the terminal turn when the
// finale generation itself fails.
func FallbackFinaleText(l Lang) string {
	return fallbackFinaleText[Normalize(l)]
}

// FallbackEventOptions is the option list of the substitute event.
func FallbackEventOptions(l Lang) []string {
	opts := fallbackEventOptions[Normalize(l)]
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// PDFLabel returns a section label for the exported artbook.
func PDFLabel(key string, l Lang) string {
	if m, ok := pdfLabels[key]; ok {
		return m[Normalize(l)]
	}
	return key
}
