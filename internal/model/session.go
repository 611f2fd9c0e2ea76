package model

// Session is the per-browser authentication state kept in the session store.
// Resolved turns true once the startup identity check has finished.
type Session struct {
	User     *User
	Resolved bool
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func Success(msg string) Flash {
	return Flash{Kind: FlashSuccess, Message: msg}
}

func Failure(msg string) Flash {
	return Flash{Kind: FlashError, Message: msg}
}
