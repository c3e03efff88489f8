package notify

import (
	"log"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Message struct {
	Level Level
	Text  string
}

// Notifier is the transient user-facing notification sink (the SPA's toast
// stack). The API adapter pushes one message per surfaced failure.
type Notifier interface {
	Push(level Level, text string)
}

// Center buffers notifications until the next rendered page drains them.
type Center struct {
	mu       sync.Mutex
	messages []Message
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Push(level Level, text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	c.messages = append(c.messages, Message{Level: level, Text: text})
	c.mu.Unlock()
}

func (c *Center) Drain() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := c.messages
	c.messages = nil
	return msgs
}

// LogNotifier just logs; used when no UI is attached (tests, tooling).
type LogNotifier struct{}

func (LogNotifier) Push(level Level, text string) {
	log.Printf("[notify][%s] %s", level, text)
}
