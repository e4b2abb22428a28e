package appstate

// Confirmer asks the user a yes/no question and reports the answer through
// done. Implementations must not block the caller.
type Confirmer func(prompt string, done func(ok bool))

// AlwaysConfirm answers yes immediately.
func AlwaysConfirm(_ string, done func(bool)) { done(true) }

// NeverConfirm answers no immediately.
func NeverConfirm(_ string, done func(bool)) { done(false) }

// Guard runs action only if confirm says yes.
func Guard(confirm Confirmer, prompt string, action func()) {
	if confirm == nil {
		action()
		return
	}
	confirm(prompt, func(ok bool) {
		if ok {
			action()
		}
	})
}
