package simresults

// Chat is a single chat message. The message is kept as logged, including the
// bracketed sender prefix.
type Chat struct {
	message string
}

func (c *Chat) Message() string {
	return c.message
}
