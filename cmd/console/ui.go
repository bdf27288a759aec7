package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

const (
	AgentName       = "DM"
	PlaceHolderText = "What do you do next?"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *adventure.Session
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// World selection state
	showWorldModal bool
	worlds         []string
	selectedWorld  int
	loadingWorlds  bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type turnMsg struct {
	session *adventure.Session
	err     error
}

type worldsLoadedMsg struct {
	worlds []string
	err    error
}

type sessionStartedMsg struct {
	session *adventure.Session
	err     error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	dmStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")) // green

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:         cfg,
		client:         client,
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		ready:          false,
		showWorldModal: true,
		loadingWorlds:  true,
		selectedWorld:  0,
	}
}

func writeMetadata(sess *adventure.Session) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE") + "\n\n")

	w := sess.World
	content.WriteString("World:\n")
	content.WriteString(w.Name + "\n\n")

	content.WriteString("Status:\n")
	content.WriteString(string(sess.Status()) + "\n\n")

	if w.Adventure.Mode == world.ModeNodes {
		content.WriteString("Story Node:\n")
		content.WriteString(w.Adventure.CurrentNode + "\n\n")
	} else {
		content.WriteString("Chapter:\n")
		content.WriteString(fmt.Sprintf("%d (progress %d/100)\n\n", w.Adventure.Chapter, w.Adventure.StoryProgress))
	}

	if w.Player != nil {
		content.WriteString("Player:\n")
		content.WriteString(fmt.Sprintf("HP %d  SAN %d  MANA %d\n\n", w.Player.Health(), w.Player.Sanity(), w.Player.Mana()))
	}

	content.WriteString("World State:\n")
	content.WriteString(fmt.Sprintf("• tension: %d\n", w.State.Tension))
	content.WriteString(fmt.Sprintf("• corruption: %d\n", w.State.Corruption))
	content.WriteString(fmt.Sprintf("• magic: %d\n", w.State.MagicDensity))
	content.WriteString(fmt.Sprintf("• radiation: %d\n", w.State.Radiation))
	content.WriteString(fmt.Sprintf("• %s, %s\n\n", w.State.DayPhase, w.State.Weather))

	content.WriteString("Rounds:\n")
	content.WriteString(fmt.Sprintf("%d played\n\n", sess.Round))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy last scene\n")

	return content.String()
}

// writeChatContent rebuilds the chat log from the session history for
// the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("WORLDWEAVER") + "\n\n")
	content.WriteString("Type your actions below, or pick a numbered option.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	if m.session != nil {
		for _, turn := range m.session.History {
			if turn.Player != locale.StartSentinel && turn.Player != locale.FinaleSentinel {
				content.WriteString(userStyle.Render("You: ") + wordwrap.String(turn.Player, chatWidth-6) + "\n\n")
			}
			content.WriteString(dmStyle.Render(AgentName+": ") + wordwrap.String(turn.DM, chatWidth-6) + "\n\n")
		}
		if len(m.session.Options) > 0 && m.session.Status() != adventure.StatusFinished {
			for i, opt := range m.session.Options {
				content.WriteString(optionStyle.Render(fmt.Sprintf("%d. %s", i+1, opt)) + "\n")
			}
			content.WriteString("\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showWorldModal {
		return m.loadWorlds()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeChatContent()
		if m.session != nil {
			m.metaViewport.SetContent(writeMetadata(m.session))
		}
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			// A bare option number selects that option.
			input = m.resolveOption(input)

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.session.History = append(m.session.History, adventure.Turn{Player: input})
			m.writeChatContent()

			return m, tea.Batch(m.sendTurn(input), progressTick())
		}

	case turnMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			// Drop the optimistic player turn so the log matches the server.
			if n := len(m.session.History); n > 0 && m.session.History[n-1].DM == "" {
				m.session.History = m.session.History[:n-1]
			}
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
		} else {
			m.session = msg.session
			m.writeChatContent()
			m.metaViewport.SetContent(writeMetadata(m.session))
		}
		m.chatViewport.GotoBottom()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

// resolveOption maps a bare "1"/"2"/"3" to the option text so branch
// selection works by number.
func (m *ConsoleUI) resolveOption(input string) string {
	if m.session == nil || len(m.session.Options) == 0 {
		return input
	}
	if len(input) == 1 && input[0] >= '1' && input[0] <= '9' {
		idx := int(input[0] - '1')
		if idx < len(m.session.Options) {
			return m.session.Options[idx]
		}
	}
	return input
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /copy - Copy the last scene to the clipboard
• Ctrl+C - Quit

How to play:
• Type your actions and press Enter
• Reply with 1/2/3 to pick a numbered option
• Be descriptive for better scenes
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()

	case "/copy":
		var note string
		if n := len(m.session.History); n > 0 {
			if err := clipboard.WriteAll(m.session.History[n-1].DM); err != nil {
				note = errorStyle.Render("Copy failed: "+err.Error()) + "\n\n"
			} else {
				note = loadingStyle.Render("Last scene copied to clipboard.") + "\n\n"
			}
		} else {
			note = errorStyle.Render("Nothing to copy yet.") + "\n\n"
		}
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + note)
		m.chatViewport.GotoBottom()
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendTurn(input string) tea.Cmd {
	return func() tea.Msg {
		sess, _, err := playTurn(m.client, m.config.APIBaseURL, m.session.World.Name, input)
		return turnMsg{sess, err}
	}
}

func (m ConsoleUI) loadWorlds() tea.Cmd {
	return func() tea.Msg {
		worlds, err := listWorlds(m.client, m.config.APIBaseURL)
		return worldsLoadedMsg{worlds, err}
	}
}

// openWorld resumes an existing session or starts a fresh one.
func (m ConsoleUI) openWorld(name string) tea.Cmd {
	return func() tea.Msg {
		sess, err := getSession(m.client, m.config.APIBaseURL, name)
		if err != nil {
			return sessionStartedMsg{nil, err}
		}
		if sess != nil && sess.Status() != adventure.StatusNotStarted {
			return sessionStartedMsg{sess, nil}
		}
		sess, err = startAdventure(m.client, m.config.APIBaseURL, name)
		return sessionStartedMsg{sess, err}
	}
}

func (m ConsoleUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case worldsLoadedMsg:
		m.loadingWorlds = false
		if msg.err != nil {
			m.err = msg.err
		} else if len(msg.worlds) == 0 {
			m.err = fmt.Errorf("no worlds found; create one via POST /v1/worlds")
		} else {
			m.worlds = msg.worlds
		}

	case sessionStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.session = msg.session
			m.showWorldModal = false
			if m.width > 0 && m.height > 0 {
				m.resize()
			}
			m.writeChatContent()
			m.metaViewport.SetContent(writeMetadata(m.session))
			m.textarea.Focus()
			m.ready = true
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.loadingWorlds || m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worlds)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			if len(m.worlds) > 0 {
				m.loading = true
				return m, m.openWorld(m.worlds[m.selectedWorld])
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("The adventure is saved; you can resume it later.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingWorlds {
		content.WriteString(modalTitleStyle.Render("Loading Worlds..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching your worlds..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Opening World..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Setting the scene..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select a World"))
		content.WriteString("\n\n")

		for i, name := range m.worlds {
			if i == m.selectedWorld {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar paints the animated strip shown while waiting on
// the narrator.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
