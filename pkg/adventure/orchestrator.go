package adventure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/lore"
	"github.com/jwright-games/worldweaver/pkg/prompts"
	"github.com/jwright-games/worldweaver/pkg/world"
)

// Status is the lifecycle state of an adventure session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// State machine rejections.
var (
	ErrNotStarted     = errors.New("adventure has not started")
	ErrAlreadyStarted = errors.New("adventure has already started")
	ErrFinished       = errors.New("adventure is finished")
)

// Turn is one player-input/narrator-output exchange. Immutable once
// appended; the history is the sole record of what happened.
type Turn struct {
	Player string `json:"player"`
	DM     string `json:"dm"`
}

// Session is one running adventure: the world plus the turn history and
// the options currently offered. The orchestrator exclusively owns the
// session for the duration of a call; turns are strictly sequential.
type Session struct {
	ID        uuid.UUID    `json:"id"`
	World     *world.World `json:"world"`
	History   []Turn       `json:"history"`
	Round     int          `json:"round"`
	Options   []string     `json:"options,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSession wraps a world in a fresh, unstarted session.
func NewSession(w *world.World) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		World:     w,
		History:   make([]Turn, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Status derives the lifecycle state from session contents.
func (s *Session) Status() Status {
	if s.Round == 0 {
		return StatusNotStarted
	}
	if s.World.Adventure.FinalTriggered {
		return StatusFinished
	}
	return StatusInProgress
}

// RecentHistoryText formats the last n turns for prompt embedding.
func (s *Session) RecentHistoryText(n int) string {
	start := len(s.History) - n
	if start < 0 {
		start = 0
	}
	var sb strings.Builder
	for _, t := range s.History[start:] {
		fmt.Fprintf(&sb, "Player: %s\nDM: %s\n\n", t.Player, t.DM)
	}
	return sb.String()
}

// FullHistoryText formats the whole history for summary/finale prompts.
func (s *Session) FullHistoryText() string {
	return s.RecentHistoryText(len(s.History))
}

func (s *Session) appendTurn(player, dm string) {
	s.History = append(s.History, Turn{Player: player, DM: dm})
	s.Round = len(s.History)
	s.UpdatedAt = time.Now()
}

// HistoryWindow is how many recent turns are embedded in event prompts.
const HistoryWindow = 3

// Generator call budget: bounded timeout, one retry, then the fixed
// fallback path. A generator failure never aborts a turn.
const (
	generateTimeout  = 30 * time.Second
	generateAttempts = 2
)

// Orchestrator drives the per-turn state machine. It owns no session
// state itself; sessions are passed in and mutated in place.
type Orchestrator struct {
	gen    llm.Generator
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRand injects the random source used for world drift and progress
// increments. Tests use a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(o *Orchestrator) { o.rng = rng }
}

// NewOrchestrator creates a turn driver using the given generator.
func NewOrchestrator(gen llm.Generator, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:    gen,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// generate wraps a generator call with the bounded timeout and a single
// retry. The error from the last attempt is returned; callers degrade to
// fallbacks, never propagate.
func (o *Orchestrator) generate(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
	var out string
	var err error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, generateTimeout)
		out, err = o.gen.Generate(callCtx, system, prompt, opts)
		cancel()
		if err == nil {
			return out, nil
		}
		if attempt < generateAttempts {
			o.logger.Warn("generator call failed, retrying", "error", err, "attempt", attempt)
		}
	}
	return "", err
}

var optionLinePattern = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)$`)

// ExtractOptions pulls numbered option lines ("1. text") out of free
// narrative text. The generator's output format is not contractually
// guaranteed, so anything that doesn't match is ignored. At most three
// options are returned.
func ExtractOptions(text string) []string {
	matches := optionLinePattern.FindAllStringSubmatch(text, -1)
	opts := make([]string, 0, 3)
	for _, m := range matches {
		opt := strings.TrimSpace(m[1])
		if opt == "" {
			continue
		}
		opts = append(opts, opt)
		if len(opts) == 3 {
			break
		}
	}
	return opts
}

// Start generates the opening scene and moves the session to IN_PROGRESS.
// Valid only from NOT_STARTED. Character personalities are derived here,
// once; they are immutable for the rest of the session.
func (o *Orchestrator) Start(ctx context.Context, s *Session) error {
	if s.Status() != StatusNotStarted {
		if s.Status() == StatusFinished {
			return ErrFinished
		}
		return ErrAlreadyStarted
	}
	w := s.World

	world.DerivePersonalities(ctx, o.gen, w)

	worldJSON, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to serialize world: %w", err)
	}

	dmText, err := o.generate(ctx, prompts.DMSystem,
		prompts.OpeningScenePrompt(w.Lang, string(worldJSON)),
		llm.Options{MaxTokens: 1000, Temperature: 0.8})
	if err != nil {
		o.logger.Error("opening scene generation failed, using fallback", "error", err, "world", w.Name)
		dmText = w.Hook
		if dmText == "" {
			dmText = w.Summary
		}
	}

	options := ExtractOptions(dmText)
	if len(options) == 0 {
		options = locale.FallbackOpeningOptions(w.Lang)
	}

	s.appendTurn(locale.StartSentinel, dmText)
	s.Options = options

	o.logger.Info("adventure started", "session_id", s.ID.String(), "world", w.Name, "mode", w.Adventure.Mode)
	return nil
}

// NextRound runs one full turn of the adventure. Valid only from
// IN_PROGRESS; FINISHED sessions are rejected with ErrFinished. A
// generator failure anywhere in the pipeline degrades to fixed fallback
// content; the player always gets narrative text and options (or none,
// when the finale lands this turn).
func (o *Orchestrator) NextRound(ctx context.Context, s *Session, playerInput string) (*Event, error) {
	switch s.Status() {
	case StatusNotStarted:
		return nil, ErrNotStarted
	case StatusFinished:
		return nil, ErrFinished
	}
	w := s.World

	// Branch resolution comes before anything can mutate: an invalid
	// choice must leave the session untouched.
	jumped := false
	if w.Adventure.Mode == world.ModeNodes && w.Adventure.AwaitingChoice {
		if err := JumpNode(w, playerInput); err != nil {
			return nil, err
		}
		jumped = true
		if AtFinaleNode(w) {
			ev, err := o.finishAdventure(ctx, s, playerInput)
			if err != nil {
				return nil, err
			}
			return ev, nil
		}
	}

	w.Breathe(o.rng)

	action := ClassifyAction(ctx, o.gen, playerInput)
	if action == nil {
		o.logger.Warn("action classification failed, using defaults", "session_id", s.ID.String())
		action = DefaultAction()
	}

	ApplyRelationship(action, w)
	level := DisclosureFor(action, w)

	ev := o.generateEvent(ctx, s, playerInput, action, level)
	ApplyEvent(w, ev)

	if action.Type == ActionExploration && !ev.Fallback {
		if kw, repeated := lore.AppearsIn(w.InfoGiven, ev.DMText); repeated {
			o.logger.Warn("narrator repeated disclosed lore", "session_id", s.ID.String(), "keyword", kw)
		}
	}

	s.appendTurn(playerInput, ev.DMText)

	finaleDue := false
	switch w.Adventure.Mode {
	case world.ModeNodes:
		if BranchDue(w) {
			w.Adventure.AwaitingChoice = true
			ev.Options = NodeOptionTexts(w)
		} else if !jumped {
			// The jump turn itself leaves the fresh node's counter at 0.
			w.Adventure.NodeRoundCount++
		}
	default:
		finaleDue = AdvanceProgress(w, o.rng)
	}

	o.saveKeywords(w, action, level)

	if finaleDue {
		fin, err := o.finishAdventure(ctx, s, "")
		if err != nil {
			return nil, err
		}
		ev.DMText += "\n\n" + fin.DMText
		ev.Options = nil
		s.Options = nil
		return ev, nil
	}

	s.Options = ev.Options
	s.UpdatedAt = time.Now()
	return ev, nil
}

// generateEvent builds the event prompt, calls the generator, and
// validates the reply. A structurally invalid reply gets one
// regeneration; after that the fixed fallback event is substituted.
func (o *Orchestrator) generateEvent(ctx context.Context, s *Session, playerInput string, action *ParsedAction, level DisclosureLevel) *Event {
	w := s.World

	system, prompt, err := prompts.New().
		WithWorld(w).
		WithPlayerInput(playerInput).
		WithAction(prompts.Action{
			Type:   string(action.Type),
			Target: action.Target,
			Intent: action.Intent,
			Topic:  action.Topic,
			Risk:   string(action.Risk),
		}).
		WithDisclosure(string(level)).
		WithRecentHistory(s.RecentHistoryText(HistoryWindow)).
		Build()
	if err != nil {
		o.logger.Error("event prompt build failed", "error", err, "session_id", s.ID.String())
		return FallbackEvent(w.Lang)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		out, genErr := o.generate(ctx, system, prompt, llm.Options{MaxTokens: 800, Temperature: 0.8})
		if genErr != nil {
			o.logger.Error("event generation failed", "error", genErr, "session_id", s.ID.String())
			break
		}
		ev := ParseEvent(out)
		if ValidateEvent(ev) {
			return ev
		}
		o.logger.Warn("event reply failed structural validation", "session_id", s.ID.String(), "attempt", attempt)
	}
	return FallbackEvent(w.Lang)
}

// finishAdventure issues the terminal generation, constrained to lore
// already present in the history, appends the final turn, clears options
// and latches the finale flag. One-way, by construction.
func (o *Orchestrator) finishAdventure(ctx context.Context, s *Session, playerInput string) (*Event, error) {
	w := s.World

	worldJSON, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize world: %w", err)
	}

	dmText, genErr := o.generate(ctx, prompts.DMSystem,
		prompts.FinalePrompt(w.Lang, string(worldJSON), s.FullHistoryText(), strings.Join(w.InfoGiven, ", ")),
		llm.Options{MaxTokens: 1000, Temperature: 0.8})
	if genErr != nil {
		o.logger.Error("finale generation failed, using fallback", "error", genErr, "session_id", s.ID.String())
		dmText = locale.FallbackFinaleText(w.Lang)
	}

	sentinel := playerInput
	if sentinel == "" {
		sentinel = locale.FinaleSentinel
	}
	s.appendTurn(sentinel, dmText)
	s.Options = nil
	w.Adventure.FinalTriggered = true
	w.Adventure.StoryProgress = 100
	w.Adventure.Chapter = ChapterFor(100)

	o.logger.Info("adventure finished", "session_id", s.ID.String(), "rounds", s.Round)
	return &Event{DMText: dmText}, nil
}

// saveKeywords records what the turn disclosed: a revealed topic joins
// the do-not-repeat list, and named targets are marked met or visited.
func (o *Orchestrator) saveKeywords(w *world.World, action *ParsedAction, level DisclosureLevel) {
	if level.Reveals() && action.Topic != "" {
		w.Disclose(action.Topic)
	}
	if action.Target == "" {
		return
	}
	if w.Character(action.Target) != nil {
		w.MarkMet(action.Target)
	}
	if action.Type == ActionMove {
		for _, loc := range w.Locations {
			if loc.Name == action.Target {
				w.MarkVisited(loc.Name)
				break
			}
		}
	}
}
