// Package repl implements the interactive gitlet session.
//
// A Session is a two-state machine (Prompting, Terminated). Each step
// writes the prompt, reads one line and either handles a built-in
// directive (blank line, help, quit/exit) or tokenizes the line and runs
// it through the dispatcher in Interactive mode, where failures are
// reported and the session carries on.
package repl
