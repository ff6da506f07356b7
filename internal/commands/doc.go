// Package commands implements the eighteen gitlet operation handlers.
//
// Each handler checks its operands, requires an initialized repository
// (except init), calls the vcs.Engine and renders the result in gitlet's
// text formats. Handlers never exit the process: they return a
// model.DomainError, model.UnexpectedError or model.EarlyExit and leave
// the rest to the dispatcher.
package commands
