package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formLogin formKind = iota
	formRegister
	formCreateCollection
	formEditCollection
)

// form is a small stack of text inputs with tab-cycled focus, used for
// login, registration and collection editing.
type form struct {
	kind     formKind
	title    string
	labels   []string
	inputs   []textinput.Model
	focus    int
	errText  string
	busy     bool
	targetID string // collection id for formEditCollection
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 32
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newLoginForm() form {
	f := form{
		kind:   formLogin,
		title:  "Login",
		labels: []string{"Username", "Password"},
		inputs: []textinput.Model{
			newInput("username", false),
			newInput("password", true),
		},
	}
	f.inputs[0].Focus()
	return f
}

func newRegisterForm() form {
	f := form{
		kind:   formRegister,
		title:  "Sign up",
		labels: []string{"First name", "Last name", "Username", "Email", "Password"},
		inputs: []textinput.Model{
			newInput("first name", false),
			newInput("last name", false),
			newInput("username", false),
			newInput("email@example.com", false),
			newInput("password", true),
		},
	}
	f.inputs[0].Focus()
	return f
}

func newCollectionForm(kind formKind, title, name, description, targetID string) form {
	f := form{
		kind:     kind,
		title:    title,
		labels:   []string{"Name", "Description"},
		targetID: targetID,
		inputs: []textinput.Model{
			newInput("name", false),
			newInput("description", false),
		},
	}
	f.inputs[0].SetValue(name)
	f.inputs[1].SetValue(description)
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) nextField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) prevField() {
	f.inputs[f.focus].Blur()
	f.focus--
	if f.focus < 0 {
		f.focus = len(f.inputs) - 1
	}
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(formLabelStyle.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.errText))
	}
	b.WriteString("\n")
	if f.busy {
		b.WriteString(helpDimStyle.Render("Working..."))
	} else {
		b.WriteString(helpDimStyle.Render("tab next field  enter submit  esc cancel"))
	}
	return formCardStyle.Render(b.String())
}
