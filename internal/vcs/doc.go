// Package vcs defines the contract between the gitlet command handlers and
// the version-control engine behind them.
//
// The engine owns all repository state: staging, commits, branches, merges
// and remotes. Handlers only see the Engine interface and the plain data
// types below. Engine methods report expected failures as
// *model.DomainError carrying one of the messages in this package and
// anything else as *model.UnexpectedError.
package vcs
