// Package cli implements the interactive client for the account service:
// registration, profile display, and password change.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dsemenov/accountd/internal/client/api"
)

type App struct {
	client *api.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{client: client, in: bufio.NewReader(in), out: out}
}

// Run reads commands until "quit" or EOF.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "commands: register, profile, passwd, quit")

	for {
		cmd, err := GetSimpleText(a.in, "command", a.out)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch cmd {
		case "register":
			a.register(ctx)
		case "profile":
			a.profile(ctx)
		case "passwd":
			a.changePassword(ctx)
		case "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
		}
	}
}

func (a *App) register(ctx context.Context) {
	name, err := GetSimpleText(a.in, "Name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	pw, err := GetPassword("Password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.client.Register(ctx, name, email, pw); err != nil {
		fmt.Fprintf(a.out, "registration failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "registered, token stored for this session")
}

func (a *App) profile(ctx context.Context) {
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "profile fetch failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "id: %s\nname: %s\nemail: %s\n", p.ID, p.Name, p.Email)
}

func (a *App) changePassword(ctx context.Context) {
	oldPw, err := GetPassword("Current password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	newPw, err := GetPassword("New password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.client.ChangePassword(ctx, oldPw, newPw); err != nil {
		fmt.Fprintf(a.out, "password change failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "password changed")
}
