// Package dispatch resolves an argument vector against the command registry,
// runs the matched handler, and classifies the result under the run's
// execution mode.
//
// Every handler error and panic is caught here, exactly once, and turned
// into a model.Outcome. Classify is a pure function of (Outcome, mode) that
// decides what the user sees and whether the run continues; Report writes
// that decision to the primary and secondary output channels.
package dispatch
