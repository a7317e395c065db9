package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/adventure-quest/pkg/game"
)

const placeholderText = "What do you do?"

type entryKind int

const (
	playerEntry entryKind = iota
	gameEntry
	errorEntry
)

// entry is one line of the transcript. Raw text is kept unstyled and
// unwrapped so the whole transcript can be reflowed on resize.
type entry struct {
	kind entryKind
	text string
}

// GameUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	ctx    context.Context
	engine *game.Engine

	gameViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	transcript   []entry
	ready        bool
	width        int
	height       int

	showQuitModal bool
}

var (
	gamePanelStyle = lipgloss.NewStyle().
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

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
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
)

func NewGameUI(ctx context.Context, eng *game.Engine) GameUI {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	gameVp := viewport.New(50, 20)
	gameVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	opening := eng.Start(ctx)

	return GameUI{
		ctx:          ctx,
		engine:       eng,
		textarea:     ta,
		gameViewport: gameVp,
		metaViewport: metaVp,
		transcript:   []entry{{gameEntry, opening}},
	}
}

func (m GameUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		m.gameViewport, vpCmd = m.gameViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeGameContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.transcript = append(m.transcript, entry{playerEntry, input})

			out, err := m.engine.Submit(m.ctx, input)
			if err != nil {
				m.transcript = append(m.transcript, entry{errorEntry, err.Error()})
			} else if out != "" {
				m.transcript = append(m.transcript, entry{gameEntry, out})
			}

			m.writeGameContent()
			m.metaViewport.SetContent(m.writeMetadata())
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.gameViewport, vpCmd = m.gameViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *GameUI) resize() {
	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	m.gameViewport.Width = gameWidth - 2
	m.gameViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(gameWidth - 4)
}

// writeGameContent rebuilds the transcript for the current viewport
// width and scrolls to the bottom.
func (m *GameUI) writeGameContent() {
	wrapWidth := m.gameViewport.Width - 6
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE QUEST") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", wrapWidth)) + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case playerEntry:
			content.WriteString(userStyle.Render("> "+e.text) + "\n\n")
		case errorEntry:
			content.WriteString(errorStyle.Render("Error: "+e.text) + "\n\n")
		default:
			content.WriteString(narratorStyle.Render(wordwrap.String(e.text, wrapWidth)) + "\n\n")
		}
	}

	m.gameViewport.SetContent(content.String())
	m.gameViewport.GotoBottom()
}

func (m *GameUI) writeMetadata() string {
	p := m.engine.Player()
	loc := m.engine.Location()

	var content strings.Builder
	content.WriteString(titleStyle.Render("CHARACTER") + "\n\n")
	content.WriteString(fmt.Sprintf("%s (Lv %d)\n", p.Name, p.Level))
	content.WriteString(fmt.Sprintf("HP: %d/%d\n", p.Health, p.MaxHealth))
	content.WriteString(fmt.Sprintf("ATK: %d  DEF: %d\n", p.AttackPower, p.Defense))
	content.WriteString(fmt.Sprintf("XP: %d/%d\n\n", p.Experience, p.Level*100))

	content.WriteString("Score:\n")
	content.WriteString(fmt.Sprintf("%d\n\n", m.engine.Score()))

	content.WriteString("Location:\n")
	content.WriteString(loc.Name + "\n\n")

	content.WriteString(fmt.Sprintf("Items: %d\n", len(m.engine.Inventory())))
	content.WriteString(fmt.Sprintf("Decisions: %d\n\n", m.engine.Decisions()))

	if m.engine.InCombat() {
		content.WriteString(errorStyle.Render("IN COMBAT") + "\n\n")
	}
	switch m.engine.State() {
	case game.StateVictory:
		content.WriteString(titleStyle.Render("VICTORY!") + "\n\n")
	case game.StateGameOver:
		content.WriteString(errorStyle.Render("GAME OVER") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• help: List commands\n")

	return content.String()
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			m.endAndQuit()
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				m.endAndQuit()
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

// endAndQuit closes the session cleanly before the program exits.
// Shutdown works in any input mode, unlike a typed "quit" command.
func (m *GameUI) endAndQuit() {
	m.engine.Shutdown(m.ctx)
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Abandon your adventure and quit?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	gamePanel := gamePanelStyle.Width(gameWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.gameViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", gameWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, metaPanel)
}
