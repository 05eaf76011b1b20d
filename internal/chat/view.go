package chat

import (
	"github.com/sanchai/sanchai/internal/models"
)

// View describes what the screen shows for a given State. It holds no
// styling; the terminal front end decides how each part is drawn.
type View struct {
	Header  Header
	Welcome string   // set only while the history is empty
	Bubbles []Bubble // history, oldest first
	Loading *Bubble  // set only while a request is pending
	Form    Form
}

// Header is the title block
type Header struct {
	Title string
	Hint  string
}

// Bubble is one message as displayed
type Bubble struct {
	Sender models.Sender
	Tag    string
	Text   string
}

// Form is the input line and send button
type Form struct {
	Placeholder    string
	Value          string
	ButtonLabel    string
	ButtonDisabled bool
}

// Render maps a state snapshot to its view. It has no side effects.
func Render(s State) View {
	v := View{
		Header: Header{
			Title: models.AppTitle,
			Hint:  models.AppHint,
		},
		Form: Form{
			Placeholder: models.InputPlaceholder,
			Value:       s.Draft,
			ButtonLabel: models.SendLabel,
		},
	}

	if len(s.History) == 0 {
		v.Welcome = models.WelcomeText
	} else {
		v.Bubbles = make([]Bubble, 0, len(s.History))
		for _, msg := range s.History {
			v.Bubbles = append(v.Bubbles, Bubble{
				Sender: msg.Sender,
				Tag:    msg.Sender.Label(),
				Text:   msg.Text,
			})
		}
	}

	if s.Pending {
		v.Loading = &Bubble{
			Sender: models.SenderAgent,
			Tag:    models.SenderAgent.Label(),
			Text:   models.ThinkingText,
		}
		v.Form.ButtonLabel = models.SendingLabel
		v.Form.ButtonDisabled = true
	}

	return v
}
