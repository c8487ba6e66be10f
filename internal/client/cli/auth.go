package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/recipemanager/internal/client/models"
	"github.com/dmitrijs2005/recipemanager/internal/client/navigation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On failure the display
// message recorded by the session manager is shown; the prior session (if
// any) stays intact.
func (a *App) Login(ctx context.Context) error {
	if !a.guard(navigation.RouteLogin) {
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.sessions.Login(ctx, username, password); err != nil {
		fmt.Println(a.sessions.Err())
		return err
	}

	fmt.Printf("Welcome, %s!\n", a.sessions.CurrentUser().Name)
	return nil
}

// Register prompts for the registration fields and creates an account.
// Like the web client, a successful registration signs the user in.
func (a *App) Register(ctx context.Context) error {
	if !a.guard(navigation.RouteRegister) {
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{Username: username, Name: name, Email: email, Password: password}
	if _, err := a.sessions.Register(ctx, req); err != nil {
		fmt.Println(a.sessions.Err())
		return err
	}

	fmt.Println("Account created.")
	return nil
}

// Logout ends the session; the recipe store resets through the
// session-ended subscription.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// WhoAmI prints the authenticated identity and, when the token carries an
// expiry claim, how long the session is still good for.
func (a *App) WhoAmI(ctx context.Context) error {
	user := a.sessions.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
	if exp, ok := a.sessions.TokenExpiry(); ok {
		fmt.Printf("Session expires %s (%s from now)\n",
			exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
	}
	return nil
}
