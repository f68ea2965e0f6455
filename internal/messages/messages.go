// Package messages supplies the encouragement phrases shown as toasts
// during focus intervals. Templates may contain the literal "[time]"
// placeholder, which the controller replaces with elapsed minutes.
package messages

import (
	"math/rand"
	"time"
)

var templates = []string{
	"You've focused for [time] minutes!",
	"Keep going, [time] minutes down already!",
	"Nice streak - [time] minutes of deep work.",
	"Stay with it, you're doing great!",
	"[time] minutes in. Your future self says thanks.",
	"Eyes on the prize!",
	"Another minute, another win. [time] so far!",
	"Breathe. Refocus. Continue.",
}

// List returns the ordered template list.
func List() []string {
	return templates
}

// Source picks templates uniformly at random.
type Source struct {
	rand      *rand.Rand
	templates []string
}

// NewSource creates a Source over the default templates.
func NewSource() *Source {
	return NewSourceWith(templates, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSourceWith creates a Source over a custom template list and
// random generator. Panics if the list is empty.
func NewSourceWith(list []string, r *rand.Rand) *Source {
	if len(list) == 0 {
		panic("messages: empty template list")
	}
	return &Source{rand: r, templates: list}
}

// Pick returns one template chosen uniformly at random.
func (source *Source) Pick() string {
	return source.templates[source.rand.Intn(len(source.templates))]
}
