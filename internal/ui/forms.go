package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a small stack of text inputs with a single focused field.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func textField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = "> "
	return ti
}

func passwordField(placeholder string) textinput.Model {
	ti := textField(placeholder, 64)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

func newForm(labels []string, inputs ...textinput.Model) form {
	f := form{labels: labels, inputs: inputs}
	f.focusField(0)
	return f
}

func (f *form) focusField(i int) {
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	f.focus = i
}

func (f *form) next() {
	f.focusField((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.focusField((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

// update forwards a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

// empty reports whether any field is blank; blank submissions are ignored.
func (f form) empty() bool {
	for i := range f.inputs {
		if f.value(i) == "" {
			return true
		}
	}
	return false
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.focusField(0)
}

// view renders the labelled fields stacked vertically.
func (f form) view(styles Styles) string {
	var b strings.Builder
	for i := range f.inputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styles.Muted.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
	}
	return b.String()
}
