package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/koscakluka/mycroft-gui-go/gui"
)

type (
	coreStatusMsg      struct{ status gui.Status }
	guiStatusMsg       struct{ status gui.Status }
	listeningMsg       struct{ isListening bool }
	speakingMsg        struct{ isSpeaking bool }
	currentSkillMsg    struct{ skill string }
	notUnderstoodMsg   struct{}
	spokenReplyMsg     struct{ skill, text string }
	skillsChangedMsg   struct{}
	sessionDataMsg     struct {
		skillID, property string
		deleted           bool
	}
	delegateCurrentMsg struct{ skillID, guiURL string }
	delegateEventMsg   struct{ skillID, name, summary string }
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	controller *gui.Controller
	view       *gui.SkillView

	input textinput.Model
	width int

	coreStatus   gui.Status
	guiStatus    gui.Status
	isListening  bool
	isSpeaking   bool
	currentSkill string
	activeSkills []string
	transcript   []string
}

func newModel(controller *gui.Controller, view *gui.SkillView) model {
	input := textinput.New()
	input.Placeholder = "say something"
	input.Focus()

	return model{
		controller: controller,
		view:       view,
		input:      input,
		width:      80,
		coreStatus: controller.Status(),
		guiStatus:  view.Status(),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			if err := m.controller.SendText(text); err != nil {
				return m.appendLine(noticeStyle, fmt.Sprintf("! %v", err)), nil
			}
			return m.appendLine(userStyle, "you: "+text), nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case coreStatusMsg:
		m.coreStatus = msg.status
		m.isListening = m.controller.IsListening()
		m.isSpeaking = m.controller.IsSpeaking()
		return m, nil

	case guiStatusMsg:
		m.guiStatus = msg.status
		return m, nil

	case listeningMsg:
		m.isListening = msg.isListening
		return m, nil

	case speakingMsg:
		m.isSpeaking = msg.isSpeaking
		return m, nil

	case currentSkillMsg:
		m.currentSkill = msg.skill
		return m, nil

	case notUnderstoodMsg:
		return m.appendLine(noticeStyle, "? not understood"), nil

	case spokenReplyMsg:
		speaker := "assistant"
		if msg.skill != "" {
			speaker = msg.skill
		}
		return m.appendLine(assistantStyle, speaker+": "+msg.text), nil

	case skillsChangedMsg:
		m.activeSkills = m.view.Skills()
		return m, nil

	case sessionDataMsg:
		verb := "set"
		if msg.deleted {
			verb = "deleted"
		}
		return m.appendLine(noticeStyle, fmt.Sprintf("~ %s %s %s", msg.skillID, verb, msg.property)), nil

	case delegateCurrentMsg:
		return m.appendLine(noticeStyle, fmt.Sprintf("* %s is current (%s)", msg.skillID, msg.guiURL)), nil

	case delegateEventMsg:
		line := fmt.Sprintf("> %s %s", msg.skillID, msg.name)
		if msg.summary != "" {
			line += " " + msg.summary
		}
		return m.appendLine(noticeStyle, line), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) appendLine(style lipgloss.Style, text string) model {
	m.transcript = append(m.transcript, style.Render(text))
	return m
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("mycroft"))
	b.WriteString(" ")
	b.WriteString(statusStyle.Render(fmt.Sprintf("core:%s gui:%s", m.coreStatus, m.guiStatus)))
	if m.isListening {
		b.WriteString(statusStyle.Render(" [listening]"))
	}
	if m.isSpeaking {
		b.WriteString(statusStyle.Render(" [speaking]"))
	}
	if m.currentSkill != "" {
		b.WriteString(statusStyle.Render(" " + m.currentSkill))
	}
	b.WriteString("\n")

	if len(m.activeSkills) > 0 {
		b.WriteString(noticeStyle.Render("skills: " + strings.Join(m.activeSkills, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, line := range m.transcript {
		b.WriteString(wordwrap.String(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}
