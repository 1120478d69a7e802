package tasklist

// Prompt and confirmation texts shown to the user.
const (
	EditPrompt          = "Edit todo:"
	ClearCompletedQuery = "Are you sure you want to delete all completed todos?"
	ResetQuery          = "Are you sure you want to delete all todos?"
)

// Prompter asks the user for a line of text.
//
// Prompt returns ok=false when the user cancels. initial is the value the
// input starts with.
type Prompter interface {
	Prompt(message, initial string) (value string, ok bool)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(message, initial string) (string, bool)

// Prompt calls f.
func (f PromptFunc) Prompt(message, initial string) (string, bool) { return f(message, initial) }

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Answer is a Prompter that already knows its reply. Useful when the user
// answered through a form or a command-line argument before the controller
// asked.
func Answer(value string) Prompter {
	return PromptFunc(func(string, string) (string, bool) { return value, true })
}

// Cancelled is a Prompter whose user always dismisses the prompt.
var Cancelled Prompter = PromptFunc(func(string, string) (string, bool) { return "", false })

// Accept and Decline are Confirmers with a fixed answer.
var (
	Accept  Confirmer = ConfirmFunc(func(string) bool { return true })
	Decline Confirmer = ConfirmFunc(func(string) bool { return false })
)
