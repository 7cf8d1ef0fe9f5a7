package commands

import (
	"context"
	"strings"
)

// Prefix marks command messages. Anything else passes through untouched.
const Prefix = "!"

type Handler func(ctx context.Context, req Request) error

// Request is one inbound command invocation. Reply sends a plain-text
// response to the originating channel; richer responses go through the
// gateway-specific runtime attached to ctx.
type Request struct {
	ChatID     string
	SenderID   string
	SenderName string
	MessageID  string
	Text       string
	Args       Args
	Metadata   map[string]string
	Reply      func(text string) error
}

type Result struct {
	Matched bool
	Command string
	Err     error
}

type Dispatching interface {
	Dispatch(ctx context.Context, req Request) Result
}

type Dispatcher struct {
	reg *Registry
}

func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Dispatch routes req to exactly one handler. Unrecognized command names
// return Matched=false and are never surfaced to the user.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	cmdName, ok := parseCommandName(req.Text)
	if !ok {
		return Result{Matched: false}
	}

	def, ok := d.reg.Find(cmdName)
	if !ok || def.Handler == nil {
		return Result{Matched: false}
	}

	req.Args = ParseArgs(strings.TrimPrefix(strings.TrimSpace(req.Text), Prefix), def.Flags...)

	err := def.Handler(ctx, req)
	return Result{Matched: true, Command: def.Name, Err: err}
}

func firstToken(input string) string {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func parseCommandName(input string) (string, bool) {
	token := firstToken(input)
	if token == "" || !strings.HasPrefix(token, Prefix) {
		return "", false
	}

	name := strings.ToLower(strings.TrimPrefix(token, Prefix))
	if name == "" {
		return "", false
	}
	return name, true
}
