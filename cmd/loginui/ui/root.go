package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ian-hamlin/sure-petcare/tokenstore"
)

type state int

const (
	stateForm state = iota
	statePayload
	stateRespond
	stateDone
)

// TokenChangedMsg reports that the stored token changed outside the UI,
// e.g. another process logged in. Feed it in through Program.Send.
type TokenChangedMsg struct {
	Token string
}

// Options carries everything the caller prepared for the UI.
type Options struct {
	ProfileEmail string
	DeviceID     string
	OutPath      string
	Store        tokenstore.Store
	StoreDesc    string
}

type RootModel struct {
	State    state
	Opts     Options
	Form     FormModel
	Payload  PayloadModel
	Respond  RespondModel
	Token    string
	Notice   string
	Quitting bool
	width    int
	height   int
}

func NewRootModel(opts Options) RootModel {
	return RootModel{
		State: stateForm,
		Opts:  opts,
		Form:  NewFormModel(opts.ProfileEmail, opts.DeviceID),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.Form.Init())
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case TokenChangedMsg:
		// The watcher reports this session's own save too; only a value
		// that differs from the one on screen is an outside change.
		if msg.Token == m.Token {
			return m, nil
		}
		m.Token = msg.Token
		if m.State == stateDone {
			if msg.Token == "" {
				m.Notice = "Stored token was removed outside this session"
			} else {
				m.Notice = "Stored token was replaced outside this session"
			}
		}

	case requestBuiltMsg:
		m.State = statePayload
		m.Payload = NewPayloadModel(msg.Request, m.Opts.OutPath)
		return m, nil

	case backToFormMsg:
		m.State = stateForm
		return m, m.Form.Init()

	case proceedToRespondMsg:
		m.State = stateRespond
		m.Respond = NewRespondModel(m.Opts.Store)
		return m, m.Respond.Init()

	case backToPayloadMsg:
		m.State = statePayload
		return m, nil

	case tokenSavedMsg:
		m.State = stateDone
		m.Token = msg.Token
		m.Notice = ""
		return m, nil
	}

	switch m.State {
	case stateForm:
		newForm, cmd := m.Form.Update(msg)
		m.Form = newForm
		cmds = append(cmds, cmd)

	case statePayload:
		newPayload, cmd := m.Payload.Update(msg)
		m.Payload = newPayload
		cmds = append(cmds, cmd)

	case stateRespond:
		newRespond, cmd := m.Respond.Update(msg)
		m.Respond = newRespond
		cmds = append(cmds, cmd)

	case stateDone:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	switch m.State {
	case stateForm:
		return m.Form.View()
	case statePayload:
		return m.Payload.View()
	case stateRespond:
		return m.Respond.View()
	case stateDone:
		return m.viewDone()
	}
	return "Unknown state"
}

func (m RootModel) viewDone() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sure Petcare - Token Saved") + "\n\n")
	b.WriteString(statusMessageStyle("Access token saved to " + m.Opts.StoreDesc))
	b.WriteString("\n\n")
	b.WriteString("Token: " + focusedStyle.Render(maskToken(m.Token)))

	if m.Notice != "" {
		b.WriteString("\n\n")
		b.WriteString(blurredStyle.Render(m.Notice))
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("q to quit"))

	return b.String()
}

func maskToken(token string) string {
	if token == "" {
		return "(none)"
	}
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
