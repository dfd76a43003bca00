package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/ganfan/internal/client/services"
)

// test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// command is the shape of every REPL handler; args are the words after the
// command name.
type command func(ctx context.Context, args []string) error

// execIface is the command surface the REPL drives. App implements it; tests
// use a recording stub.
type execIface interface {
	isLoggedIn() bool
	isChef() bool

	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error

	Dishes(ctx context.Context, args []string) error
	AddDish(ctx context.Context, args []string) error
	ToggleDish(ctx context.Context, args []string) error
	DeleteDish(ctx context.Context, args []string) error

	Dinners(ctx context.Context, args []string) error
	AddDinner(ctx context.Context, args []string) error
	ShowDinner(ctx context.Context, args []string) error
	EditDinner(ctx context.Context, args []string) error
	AllowModify(ctx context.Context, args []string) error
	DeleteDinner(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error

	Users(ctx context.Context, args []string) error
	AddUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
}

func commands(a execIface) map[string]command {
	return map[string]command{
		"login":       a.Login,
		"logout":      a.Logout,
		"whoami":      a.Whoami,
		"dishes":      a.Dishes,
		"adddish":     a.AddDish,
		"toggledish":  a.ToggleDish,
		"deldish":     a.DeleteDish,
		"dinners":     a.Dinners,
		"adddinner":   a.AddDinner,
		"dinner":      a.ShowDinner,
		"editdinner":  a.EditDinner,
		"allowmodify": a.AllowModify,
		"deldinner":   a.DeleteDinner,
		"order":       a.Order,
		"review":      a.Review,
		"users":       a.Users,
		"adduser":     a.AddUser,
		"deluser":     a.DeleteUser,
	}
}

const (
	helpGuest = "Available commands: login, exit"
	helpDiner = "Available commands: dinners, dinner <n>, order <dinner> <dish>, review <dinner>, dishes, users, whoami, logout, exit"
	helpChef  = "Available commands: dinners, dinner <n>, adddinner, editdinner <n>, allowmodify <n>, deldinner <n>, " +
		"order <dinner> <dish>, review <dinner>, dishes, adddish, toggledish <n>, deldish <n>, " +
		"users, adduser, deluser <n>, whoami, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it. It
// returns on EOF or on "exit"/"quit". Handler errors are printed and the loop
// goes on; a lost session sends the user to the login screens.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	table := commands(a)

	for {
		printFn(fmt.Sprintf("ganfan %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isChef():
				printlnFn(helpChef)
			case a.isLoggedIn():
				printlnFn(helpDiner)
			default:
				printlnFn(helpGuest)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		handler, ok := table[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if cmd != "login" && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		if err := handler(ctx, args); err != nil {
			if errors.Is(err, services.ErrNoSession) {
				printlnFn("Please log in again.")
				_ = a.Login(ctx, nil)
				continue
			}
			printlnFn("Error:", err)
		}
	}
}
