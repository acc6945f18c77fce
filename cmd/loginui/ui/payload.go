package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ian-hamlin/sure-petcare/login"
)

// errMsg carries an I/O failure from a command back into a view.
type errMsg error

type payloadSavedMsg struct {
	Path string
}

type proceedToRespondMsg struct{}

type backToFormMsg struct{}

// PayloadModel shows the serialized request so the user can inspect it,
// write it to a file, or move on to pasting the service's response.
type PayloadModel struct {
	Request login.Request
	Payload string
	OutPath string
	Saved   bool
	Err     error
}

func NewPayloadModel(req login.Request, outPath string) PayloadModel {
	payload, _ := json.Marshal(req)
	return PayloadModel{
		Request: req,
		Payload: string(payload),
		OutPath: outPath,
	}
}

func (m PayloadModel) Update(msg tea.Msg) (PayloadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m, func() tea.Msg { return proceedToRespondMsg{} }
		case tea.KeyEsc:
			return m, func() tea.Msg { return backToFormMsg{} }
		}
		if msg.String() == "s" {
			return m, m.save
		}

	case payloadSavedMsg:
		m.Saved = true
		m.Err = nil

	case errMsg:
		m.Err = msg
	}

	return m, nil
}

func (m PayloadModel) save() tea.Msg {
	if err := os.MkdirAll(filepath.Dir(m.OutPath), 0o755); err != nil {
		return errMsg(fmt.Errorf("mkdir payload dir: %w", err))
	}
	if err := os.WriteFile(m.OutPath, []byte(m.Payload+"\n"), 0o600); err != nil {
		return errMsg(fmt.Errorf("write payload: %w", err))
	}
	return payloadSavedMsg{Path: m.OutPath}
}

func (m PayloadModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sure Petcare - Login Payload") + "\n\n")
	b.WriteString(payloadStyle.Render(m.Payload))
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("s to save, Enter to paste the response, Esc to edit fields"))

	if m.Saved {
		b.WriteString("\n\n")
		b.WriteString(statusMessageStyle("Payload written to " + m.OutPath))
	}

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}

	return b.String()
}
