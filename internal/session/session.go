// ABOUTME: Session model: the client's belief about who is logged in
// ABOUTME: Three persisted fields that are written and cleared together

package session

import (
	"errors"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
)

// State is the controller's authentication state
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged_out"
	case LoggedIn:
		return "logged_in"
	default:
		return "unknown"
	}
}

// Session holds the bearer credentials of the authenticated user
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Username     string `json:"username,omitempty"`
}

// Present reports whether all three fields are set. A partial
// session counts as absent.
func (s Session) Present() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && s.Username != ""
}

// loadSession reads the triple from the store
func loadSession(st Store) Session {
	var s Session
	s.AccessToken, _ = st.Get(KeyAccessToken)
	s.RefreshToken, _ = st.Get(KeyRefreshToken)
	s.Username, _ = st.Get(KeyUsername)
	return s
}

// saveSession writes all three fields, in one step when the store allows it
func saveSession(st Store, s Session) error {
	if bs, ok := st.(BatchStore); ok {
		return bs.SetAll(map[string]string{
			KeyAccessToken:  s.AccessToken,
			KeyRefreshToken: s.RefreshToken,
			KeyUsername:     s.Username,
		})
	}
	if err := st.Set(KeyAccessToken, s.AccessToken); err != nil {
		return err
	}
	if err := st.Set(KeyRefreshToken, s.RefreshToken); err != nil {
		return err
	}
	return st.Set(KeyUsername, s.Username)
}

// clearSession removes all three fields, attempting every key
func clearSession(st Store) error {
	return errors.Join(
		st.Remove(KeyAccessToken),
		st.Remove(KeyRefreshToken),
		st.Remove(KeyUsername),
	)
}

// Outcome classifies the result of a controller action
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNetworkError
	OutcomeAPIError
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeAPIError:
		return "api_error"
	default:
		return "rejected"
	}
}

// Classify maps an action error to an Outcome
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case client.IsNetworkError(err):
		return OutcomeNetworkError
	}
	if _, ok := client.AsAPIError(err); ok {
		return OutcomeAPIError
	}
	return OutcomeRejected
}
