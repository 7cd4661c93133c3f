package main

import (
	"context"
	"flag"
	"fmt"
	"log"
)

func (a *app) runLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username (email)")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		log.Fatal("usage: admin login -u <email> -p <password>")
	}
	if err := a.sessions.SignIn(ctx, *username, *password); err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Printf("signed in as %s\n", *username)
}

func (a *app) runLogout(ctx context.Context) {
	if err := a.sessions.SignOut(ctx); err != nil {
		log.Fatalf("logout failed: %v", err)
	}
	fmt.Println("signed out")
}

func (a *app) runSignup(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("u", "", "username (email)")
	password := fs.String("p", "", "password")
	email := fs.String("email", "", "email address (defaults to username)")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		log.Fatal("usage: admin signup -u <email> -p <password> [-email <address>]")
	}
	addr := *email
	if addr == "" {
		addr = *username
	}
	if err := a.sessions.SignUp(ctx, *username, *password, addr); err != nil {
		log.Fatalf("signup failed: %v", err)
	}
	fmt.Println("signed up, check your inbox for the confirmation code")
}

func (a *app) runConfirm(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("confirm", flag.ExitOnError)
	username := fs.String("u", "", "username (email)")
	code := fs.String("code", "", "confirmation code")
	_ = fs.Parse(args)

	if *username == "" || *code == "" {
		log.Fatal("usage: admin confirm -u <email> -code <code>")
	}
	if err := a.sessions.ConfirmSignUp(ctx, *username, *code); err != nil {
		log.Fatalf("confirmation failed: %v", err)
	}
	fmt.Println("account confirmed")
}

func (a *app) runResend(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resend", flag.ExitOnError)
	username := fs.String("u", "", "username (email)")
	_ = fs.Parse(args)

	if *username == "" {
		log.Fatal("usage: admin resend -u <email>")
	}
	if err := a.sessions.ResendConfirmation(ctx, *username); err != nil {
		log.Fatalf("resend failed: %v", err)
	}
	fmt.Println("confirmation code resent")
}

func (a *app) runWhoami(ctx context.Context) {
	user, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		log.Fatalf("not signed in: %v", err)
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Email)
}
