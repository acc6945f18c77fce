package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ian-hamlin/sure-petcare/deviceid"
	"github.com/ian-hamlin/sure-petcare/login"
)

// requestBuiltMsg carries the request built from the form fields.
type requestBuiltMsg struct {
	Request login.Request
}

const (
	inputEmail = iota
	inputPassword
	inputDeviceID
)

// FormModel collects the three request fields. Capture only: nothing the
// user types here can fail.
type FormModel struct {
	Inputs   []textinput.Model
	FocusIdx int
}

func NewFormModel(email, deviceID string) FormModel {
	inputs := make([]textinput.Model, 3)

	inputs[inputEmail] = textinput.New()
	inputs[inputEmail].Placeholder = "email@example.com"
	inputs[inputEmail].Prompt = "Email: "
	inputs[inputEmail].SetValue(email)
	inputs[inputEmail].Focus()

	inputs[inputPassword] = textinput.New()
	inputs[inputPassword].Placeholder = "password"
	inputs[inputPassword].EchoMode = textinput.EchoPassword
	inputs[inputPassword].Prompt = "Password: "

	inputs[inputDeviceID] = textinput.New()
	inputs[inputDeviceID].Placeholder = "xxx-xxx-xxx-xxx"
	inputs[inputDeviceID].Prompt = "Device ID: "
	inputs[inputDeviceID].SetValue(deviceID)

	return FormModel{
		Inputs:   inputs,
		FocusIdx: 0,
	}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.submit
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		case tea.KeyCtrlG:
			m.Inputs[inputDeviceID].SetValue(deviceid.New())
		}
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *FormModel) nextInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx++
	if m.FocusIdx >= len(m.Inputs) {
		m.FocusIdx = 0
	}
	m.Inputs[m.FocusIdx].Focus()
}

func (m *FormModel) prevInput() {
	m.Inputs[m.FocusIdx].Blur()
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
	m.Inputs[m.FocusIdx].Focus()
}

// submit captures the fields exactly as typed; the service is the one who
// judges them.
func (m FormModel) submit() tea.Msg {
	req := login.NewRequestBuilder().
		WithEmailAddress(m.Inputs[inputEmail].Value()).
		WithPassword(m.Inputs[inputPassword].Value()).
		WithDeviceID(m.Inputs[inputDeviceID].Value()).
		Build()
	return requestBuiltMsg{Request: req}
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sure Petcare - Login") + "\n\n")

	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		if i < len(m.Inputs)-1 {
			b.WriteRune('\n')
		}
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab to change fields, Enter to submit, Ctrl+G for a fresh device id"))

	return b.String()
}
