package alarm

// DeletePrompt is the question asked before an alarm is removed.
const DeletePrompt = "¿Seguro que quieres eliminar esta alarma?"

// Confirmer answers an interactive yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Answer is a Confirmer with a fixed reply, e.g. the value of a submitted
// confirmation field.
type Answer bool

func (a Answer) Confirm(string) bool { return bool(a) }
