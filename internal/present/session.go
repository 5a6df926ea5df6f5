package present

import "github.com/Alijeyrad/clinic_console/internal/session"

// SessionHint is the line printed when the session changes: where to go
// next, the way the web front end navigated after login and logout.
func SessionHint(e session.Event) string {
	switch e {
	case session.EventEstablished:
		return "Signed in. Try `clinic doctors list` or `clinic patients list`."
	case session.EventEnded:
		return "Signed out. Run `clinic auth login` to sign in again."
	default:
		return ""
	}
}
