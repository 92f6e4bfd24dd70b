package testutil

import (
	"fmt"
	"sync"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records replies.
// Only Sender, Text and Send are implemented; any other call panics.
type FakeContext struct {
	tele.Context

	User    *tele.User
	Msg     string
	SendErr error

	mu      sync.Mutex
	sent    []string
	markups []*tele.ReplyMarkup
}

// NewFakeContext creates a context for a text message from userID
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID, FirstName: "Olena"},
		Msg:  text,
	}
}

func (c *FakeContext) Sender() *tele.User {
	return c.User
}

func (c *FakeContext) Text() string {
	return c.Msg
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	if c.SendErr != nil {
		return c.SendErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sent = append(c.sent, fmt.Sprint(what))
	for _, opt := range opts {
		if markup, ok := opt.(*tele.ReplyMarkup); ok {
			c.markups = append(c.markups, markup)
		}
	}
	return nil
}

// Sent returns every reply text in order
func (c *FakeContext) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.sent...)
}

// LastSent returns the most recent reply, or "" if nothing was sent
func (c *FakeContext) LastSent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1]
}

// LastMarkup returns the most recent keyboard, or nil
func (c *FakeContext) LastMarkup() *tele.ReplyMarkup {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.markups) == 0 {
		return nil
	}
	return c.markups[len(c.markups)-1]
}
