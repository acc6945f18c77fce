package ui

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ian-hamlin/sure-petcare/login"
	"github.com/ian-hamlin/sure-petcare/tokenstore"
)

func TestFormModel_TabCycles(t *testing.T) {
	m := NewFormModel("", "dev-1")
	assert.Equal(t, 0, m.FocusIdx)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.FocusIdx)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.FocusIdx, "tab wraps around")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, m.FocusIdx, "shift+tab wraps backwards")
}

// Submitting the form must yield the request with the exact wire form.
func TestFormModel_Submit(t *testing.T) {
	m := NewFormModel("email@example.com", "xxx-xxx-xxx-xxx")
	m.Inputs[inputPassword].SetValue("qwerty123")
	m.FocusIdx = len(m.Inputs) - 1

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(requestBuiltMsg)
	require.True(t, ok)

	b, err := json.Marshal(msg.Request)
	require.NoError(t, err)
	assert.Equal(t,
		`{"email_address":"email@example.com","password":"qwerty123","device_id":"xxx-xxx-xxx-xxx"}`,
		string(b))
}

// Enter on any earlier field moves focus instead of submitting.
func TestFormModel_EnterAdvances(t *testing.T) {
	m := NewFormModel("", "")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.FocusIdx)

	if cmd != nil {
		_, submitted := cmd().(requestBuiltMsg)
		assert.False(t, submitted)
	}
}

func TestFormModel_CtrlGMintsDeviceID(t *testing.T) {
	m := NewFormModel("", "dev-1")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})

	got := m.Inputs[inputDeviceID].Value()
	assert.NotEqual(t, "dev-1", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestPayloadModel_RendersWireForm(t *testing.T) {
	req := login.NewRequestBuilder().
		WithEmailAddress("email@example.com").
		WithPassword("qwerty123").
		WithDeviceID("xxx-xxx-xxx-xxx").
		Build()

	m := NewPayloadModel(req, filepath.Join(t.TempDir(), "login.json"))

	assert.Equal(t,
		`{"email_address":"email@example.com","password":"qwerty123","device_id":"xxx-xxx-xxx-xxx"}`,
		m.Payload)
	assert.Contains(t, m.View(), "Login Payload")
}

func TestPayloadModel_Save(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "login.json")
	req := login.NewRequestBuilder().WithEmailAddress("a@b.c").Build()
	m := NewPayloadModel(req, out)

	msg := m.save()
	saved, ok := msg.(payloadSavedMsg)
	require.True(t, ok, "save returned %#v", msg)
	assert.Equal(t, out, saved.Path)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, m.Payload+"\n", string(b))

	m, _ = m.Update(saved)
	assert.True(t, m.Saved)
	assert.Contains(t, m.View(), "Payload written")
}

func TestRespondModel_BadResponseShowsError(t *testing.T) {
	m := NewRespondModel(&tokenstore.Memory{})
	m.Input.SetValue(`{"access_token":"abc"}`)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	var derr *login.DeserializationError
	require.ErrorAs(t, m.Err, &derr)
	assert.Equal(t, "token", derr.Field)
	assert.Contains(t, m.View(), "token")
}

func TestRespondModel_SavesToken(t *testing.T) {
	store := &tokenstore.Memory{}
	m := NewRespondModel(store)
	m.Input.SetValue(`{"token":"tok-9"}`)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, m.Err)
	require.NotNil(t, cmd)

	msg, ok := cmd().(tokenSavedMsg)
	require.True(t, ok)
	assert.Equal(t, "tok-9", msg.Token)

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-9", token)
}

// Walk the whole flow: form -> payload -> respond -> done.
func TestRootModel_Flow(t *testing.T) {
	store := &tokenstore.Memory{}
	root := NewRootModel(Options{
		ProfileEmail: "email@example.com",
		DeviceID:     "dev-1",
		OutPath:      filepath.Join(t.TempDir(), "login.json"),
		Store:        store,
		StoreDesc:    "memory",
	})
	assert.Equal(t, stateForm, root.State)

	req := login.NewRequestBuilder().WithEmailAddress("email@example.com").Build()

	next, _ := root.Update(requestBuiltMsg{Request: req})
	root = next.(RootModel)
	assert.Equal(t, statePayload, root.State)

	next, _ = root.Update(proceedToRespondMsg{})
	root = next.(RootModel)
	assert.Equal(t, stateRespond, root.State)

	next, _ = root.Update(backToPayloadMsg{})
	root = next.(RootModel)
	assert.Equal(t, statePayload, root.State)

	next, _ = root.Update(proceedToRespondMsg{})
	root = next.(RootModel)

	next, _ = root.Update(tokenSavedMsg{Token: "tok-9"})
	root = next.(RootModel)
	assert.Equal(t, stateDone, root.State)
	assert.Contains(t, root.View(), "Token Saved")

	next, _ = root.Update(TokenChangedMsg{Token: ""})
	root = next.(RootModel)
	assert.Contains(t, root.View(), "removed outside")

	next, cmd := root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	root = next.(RootModel)
	assert.True(t, root.Quitting)
	require.NotNil(t, cmd)
}

// Saving through the UI makes the file watcher report that same write back.
// The echo of our own token must not read as an outside change.
func TestRootModel_WatcherEchoOfOwnSave(t *testing.T) {
	root := NewRootModel(Options{Store: &tokenstore.Memory{}, StoreDesc: "memory"})

	next, _ := root.Update(tokenSavedMsg{Token: "tok-9"})
	root = next.(RootModel)
	require.Equal(t, stateDone, root.State)

	next, _ = root.Update(TokenChangedMsg{Token: "tok-9"})
	root = next.(RootModel)
	assert.Empty(t, root.Notice)
	assert.NotContains(t, root.View(), "outside")

	next, _ = root.Update(TokenChangedMsg{Token: "tok-10"})
	root = next.(RootModel)
	assert.Equal(t, "tok-10", root.Token)
	assert.Contains(t, root.View(), "replaced outside")
}

func TestRootModel_CtrlCQuitsAnywhere(t *testing.T) {
	root := NewRootModel(Options{Store: &tokenstore.Memory{}})

	next, cmd := root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	root = next.(RootModel)
	assert.True(t, root.Quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "Bye!\n", root.View())
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "(none)", maskToken(""))
	assert.Equal(t, "short", maskToken("short"))
	assert.Equal(t, "12345678...", maskToken("1234567890abcdef"))
	assert.False(t, strings.Contains(maskToken("1234567890abcdef"), "90abcdef"))
}
