// Package cli is the interactive ganfan terminal.
//
// App restores the saved session or runs the login screens, starts a
// background session watcher and then reads commands until the user exits.
// Commands that take an item accept either its number in the latest listing
// or the leading characters of its id:
//
//	ganfan (Mom chef)> dinner 1
//	ganfan (Mom chef)> order 1 3
//
// The chef manages dishes, dinners and members; diners pick dishes before the
// order deadline and review a dinner after it took place.
package cli
