package commands

import (
	"context"
	"log"
	"strings"

	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/glossary"
	"github.com/codyseavey/archimago/internal/names"
)

// RulebookURL links the official rulebook.
const RulebookURL = "https://drive.google.com/file/d/1sgQo0xf0N2teIR0zlyl91g9j6LVncZnr/view"

// TermCommand explains a game term from the glossary.
type TermCommand struct {
	terms *glossary.Glossary
}

func NewTermCommand(terms *glossary.Glossary) *TermCommand {
	return &TermCommand{terms: terms}
}

func (c *TermCommand) Names() []string { return []string{"term"} }

func (c *TermCommand) Summary() string { return "Get information about term." }

func (c *TermCommand) Usage() string {
	return "Usage:\n\n!term <term> returns an explanation for the given term."
}

func (c *TermCommand) Run(_ context.Context, req Request) (string, error) {
	key := names.NormalizeWords(req.Params)
	if term, ok := c.terms.Lookup(key); ok {
		return format.CodeBlock(term.Text), nil
	}
	return format.CodeBlock(format.Suggestion(key, c.terms.Index(), "No explanation found for term")), nil
}

// RulebookCommand links the rulebook.
type RulebookCommand struct{}

func (RulebookCommand) Names() []string { return []string{"rulebook", "rb"} }

func (RulebookCommand) Summary() string { return "Get URL for the official rulebook." }

func (RulebookCommand) Usage() string {
	return "Usage:\n\n!rulebook returns the link to the official rulebook.\n!rb # same as above"
}

func (RulebookCommand) Run(context.Context, Request) (string, error) {
	return RulebookURL, nil
}

// StopCommand shuts the bot down. Only registered in debug mode.
type StopCommand struct {
	stop func()
}

func NewStopCommand(stop func()) *StopCommand {
	return &StopCommand{stop: stop}
}

func (c *StopCommand) Names() []string { return []string{"stop"} }

func (c *StopCommand) Summary() string { return "Stops the bot, debug mode only." }

func (c *StopCommand) Usage() string { return "Usage:\n\n!stop closes the bot." }

func (c *StopCommand) Run(_ context.Context, req Request) (string, error) {
	log.Printf("[%s] Closing Archimago..", req.ID)
	c.stop()
	return "", nil
}

// HelpCommand lists the registered commands.
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand registers the help command with r, after every command
// registered so far.
func NewHelpCommand(r *Registry) *HelpCommand {
	h := &HelpCommand{registry: r}
	r.Register(h)
	return h
}

func (c *HelpCommand) Names() []string { return []string{"help"} }

func (c *HelpCommand) Summary() string { return "Returns this message." }

func (c *HelpCommand) Usage() string {
	return "Usage:\n\n!help returns list of commands and their explanations.\n!help <command> returns usage information about a command."
}

func (c *HelpCommand) Run(_ context.Context, req Request) (string, error) {
	if len(req.Params) > 0 {
		name := strings.TrimPrefix(req.Params[0], Prefix)
		h, ok := c.registry.Lookup(name)
		if !ok {
			return "Invalid command: " + req.Params[0], nil
		}
		if h.Usage() == "" {
			return "No help provided for command: " + req.Params[0] + ".", nil
		}
		return format.CodeBlock(h.Usage()), nil
	}

	var b strings.Builder
	b.WriteString("Archimago provides the following commands:\n\n")
	for _, h := range c.registry.Handlers() {
		b.WriteString("- " + format.Bold(strings.Join(h.Names(), ", ")) + ": " + h.Summary() + "\n")
	}
	return b.String(), nil
}
