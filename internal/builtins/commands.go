package builtins

import "strings"

// Command is a REPL built-in. Built-ins are recognised before a line reaches
// the lexer, so they never shadow or touch variables.
type Command string

const (
	// Quit ends the interactive session
	Quit Command = "quit"

	// Clear clears the terminal; variables are kept
	Clear Command = "clear"
)

// Commands contains all valid built-in commands with their help text
var Commands = map[Command]string{
	Quit:  "exit the session",
	Clear: "clear the screen, keeping variables",
}

// Lookup reports whether line, ignoring surrounding whitespace, is a
// built-in command.
func Lookup(line string) (Command, bool) {
	cmd := Command(strings.TrimSpace(line))
	_, ok := Commands[cmd]
	return cmd, ok
}

// IsBuiltin checks if a name is a built-in command
func IsBuiltin(name string) bool {
	_, ok := Commands[Command(name)]
	return ok
}
