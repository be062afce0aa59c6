package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/target/boxoffice/internal/adapters/tokeninfo"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
)

// passwordEnv supplies the login password when -password is omitted.
const passwordEnv = "BOXOFFICE_PASSWORD"

type loginOptions struct {
	Scope    string
	Email    string
	Password string
}

type scopeOptions struct {
	Scope string
}

type hasRoleOptions struct {
	Scope string
	Role  string
}

func parseLoginFlags(args []string) (loginOptions, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts loginOptions
	fs.StringVar(&opts.Scope, "scope", defaultScope, "Session scope to store the login under")
	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Password, "password", "", "Account password (defaults to $"+passwordEnv+")")

	if err := fs.Parse(args); err != nil {
		return loginOptions{}, err
	}
	if opts.Password == "" {
		opts.Password = os.Getenv(passwordEnv)
	}
	if strings.TrimSpace(opts.Email) == "" {
		return loginOptions{}, errors.New("--email is required")
	}
	if opts.Password == "" {
		return loginOptions{}, fmt.Errorf("--password or $%s is required", passwordEnv)
	}
	return opts, nil
}

func parseScopeFlags(name string, args []string) (scopeOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts scopeOptions
	fs.StringVar(&opts.Scope, "scope", defaultScope, "Session scope")
	if err := fs.Parse(args); err != nil {
		return scopeOptions{}, err
	}
	return opts, nil
}

func parseHasRoleFlags(args []string) (hasRoleOptions, error) {
	fs := flag.NewFlagSet("has-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts hasRoleOptions
	fs.StringVar(&opts.Scope, "scope", defaultScope, "Session scope")
	fs.StringVar(&opts.Role, "role", "", "Role to check (required)")
	if err := fs.Parse(args); err != nil {
		return hasRoleOptions{}, err
	}
	if opts.Role == "" && fs.NArg() > 0 {
		opts.Role = fs.Arg(0)
	}
	if strings.TrimSpace(opts.Role) == "" {
		return hasRoleOptions{}, errors.New("--role is required")
	}
	return opts, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		res, err := env.services.Auth.Login(cmdCtx.Ctx, opts.Scope, domainauth.Credentials{
			Email:    opts.Email,
			Password: opts.Password,
		})
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		p := res.Session.Profile
		return writef(cmdCtx.Out, "Logged in as %s (%s) role=%s\n", displayName(&p), p.Email, orDash(p.Role()))
	})
}

func runLogout(cmdCtx *commandContext, args []string) error {
	opts, err := parseScopeFlags("logout", args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		if err := env.services.Auth.Logout(cmdCtx.Ctx, opts.Scope); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		return writef(cmdCtx.Out, "Logged out\n")
	})
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	opts, err := parseScopeFlags("whoami", args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		state := env.services.Auth.State(cmdCtx.Ctx, opts.Scope)
		if !state.Authenticated() {
			return errNotLoggedIn
		}
		p := state.Profile
		lines := []string{
			"Name:   " + displayName(p),
			"Email:  " + orDash(p.Email),
			"Roles:  " + orDash(strings.Join(p.Roles, ", ")),
		}
		if p.IsAdminFlagged() {
			lines = append(lines, "Admin flags: "+strings.Join(p.AdminFlags, ", "))
		}
		lines = append(lines, tokenLines(env.services.Auth.Token(cmdCtx.Ctx, opts.Scope), time.Now())...)
		for _, l := range lines {
			if err := writef(cmdCtx.Out, "%s\n", l); err != nil {
				return err
			}
		}
		return nil
	})
}

// tokenLines describes a token without printing it.
func tokenLines(token string, now time.Time) []string {
	info := tokeninfo.Inspect(token)
	if !info.JWT {
		return []string{"Token:  opaque"}
	}
	lines := []string{"Token:  JWT"}
	if info.Subject != "" {
		lines = append(lines, "  subject: "+info.Subject)
	}
	if info.Issuer != "" {
		lines = append(lines, "  issuer:  "+info.Issuer)
	}
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(now) {
			state = "expired"
		}
		lines = append(lines, fmt.Sprintf("  expires: %s (%s)", info.ExpiresAt.UTC().Format(time.RFC3339), state))
	}
	return lines
}

func runHasRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseHasRoleFlags(args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		if !env.services.Auth.IsAuthenticated(cmdCtx.Ctx, opts.Scope) {
			return errNotLoggedIn
		}
		if !env.services.Auth.HasRole(cmdCtx.Ctx, opts.Scope, opts.Role) {
			return fmt.Errorf("principal does not hold role %q", opts.Role)
		}
		return writef(cmdCtx.Out, "yes\n")
	})
}

func displayName(p *domainauth.Profile) string {
	if p == nil {
		return "-"
	}
	return orDash(p.Name)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
