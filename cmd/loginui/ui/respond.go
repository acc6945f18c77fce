package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ian-hamlin/sure-petcare/login"
	"github.com/ian-hamlin/sure-petcare/tokenstore"
)

type tokenSavedMsg struct {
	Token string
}

type backToPayloadMsg struct{}

// RespondModel takes the JSON the service answered with, pulls the token
// out of it and saves it to the configured store.
type RespondModel struct {
	Input textinput.Model
	Store tokenstore.Store
	Err   error
}

func NewRespondModel(store tokenstore.Store) RespondModel {
	in := textinput.New()
	in.Placeholder = `{"token":"..."}`
	in.Prompt = "Response: "
	in.Focus()

	return RespondModel{Input: in, Store: store}
}

func (m RespondModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m RespondModel) Update(msg tea.Msg) (RespondModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			resp, err := login.ParseResponse([]byte(m.Input.Value()))
			if err != nil {
				m.Err = err
				return m, nil
			}
			m.Err = nil
			return m, saveTokenCmd(m.Store, resp.AccessToken())
		case tea.KeyEsc:
			return m, func() tea.Msg { return backToPayloadMsg{} }
		}

	case errMsg:
		m.Err = msg
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func saveTokenCmd(store tokenstore.Store, token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := store.Save(ctx, token); err != nil {
			return errMsg(fmt.Errorf("save token: %w", err))
		}
		return tokenSavedMsg{Token: token}
	}
}

func (m RespondModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sure Petcare - Service Response") + "\n\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Paste the login response, Enter to extract the token, Esc to go back"))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorMessageStyle(m.Err.Error()))
	}

	return b.String()
}
