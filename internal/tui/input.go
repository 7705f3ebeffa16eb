// ABOUTME: Parses chat input lines into slash commands or questions
// ABOUTME: Kept separate from the Bubble Tea model so it is easy to test
package tui

import (
	"strings"
)

// InputKind classifies a line typed into the chat
type InputKind int

const (
	InputNone InputKind = iota
	InputQuestion
	InputProcess
	InputSave
	InputLoad
	InputClear
	InputHelp
	InputQuit
	InputUnknown
)

// Input is a parsed chat line
type Input struct {
	Kind InputKind
	// Text is the question, or the unrecognised command
	Text string
	Args []string
}

// ParseInput interprets one line of user input
func ParseInput(line string) Input {
	line = strings.TrimSpace(line)
	if line == "" {
		return Input{Kind: InputNone}
	}
	if strings.EqualFold(line, "exit") {
		return Input{Kind: InputQuit}
	}
	if !strings.HasPrefix(line, "/") {
		return Input{Kind: InputQuestion, Text: line}
	}

	fields := strings.Fields(line)
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "/process":
		return Input{Kind: InputProcess, Args: args}
	case "/save":
		return Input{Kind: InputSave, Args: args}
	case "/load":
		return Input{Kind: InputLoad, Args: args}
	case "/clear":
		return Input{Kind: InputClear}
	case "/help", "/?":
		return Input{Kind: InputHelp}
	case "/quit", "/exit":
		return Input{Kind: InputQuit}
	}
	return Input{Kind: InputUnknown, Text: fields[0]}
}

// dirArg returns the first argument, or fallback when none was given
func (in Input) dirArg(fallback string) string {
	if len(in.Args) > 0 {
		return in.Args[0]
	}
	return fallback
}

const helpText = `Commands:
  /process <file.pdf>...  build a new vector store from PDFs
  /save [dir]             save the vector store
  /load [dir]             load a saved vector store
  /clear                  clear the conversation
  /quit                   leave the chat
Anything else is asked as a question.`
