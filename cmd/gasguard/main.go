package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/gasguard/gasguard-go/client"
	"github.com/gasguard/gasguard-go/credentials/filestore"
	"github.com/gasguard/gasguard-go/internal/config"
)

const appName = "GasGuard"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(*verbose)

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	api, err := client.New(cfg.BaseURL, store,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	args := flag.Args()
	if len(args) == 0 {
		displayAppname(appName)
		usage()
		return nil
	}

	ctx := context.Background()
	return dispatch(ctx, api, args)
}

func dispatch(ctx context.Context, api *client.Client, args []string) error {
	switch args[0] {
	case "register":
		return runRegister(ctx, api, args[1:])
	case "login":
		return runLogin(ctx, api, args[1:])
	case "logout":
		return api.Logout()
	case "profile":
		return runProfile(ctx, api)
	case "update":
		return runUpdate(ctx, api, args[1:])
	case "delete-account":
		return runDeleteAccount(ctx, api)
	case "status":
		return runStatus(ctx, api)
	case "alerts":
		return runAlerts(ctx, api)
	case "valve":
		return runValve(ctx, api, args[1:])
	case "fan":
		return runFan(ctx, api, args[1:])
	case "session":
		return runSession(api)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func newStore(cfg *config.Config) (*filestore.Store, error) {
	path := cfg.CredentialsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir := home + "/.gasguard"
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
		path = dir + "/credentials"
	}
	passphrase := cfg.Passphrase
	if passphrase == "" {
		return nil, errors.New("GASGUARD_PASSPHRASE is required to unlock the credential store")
	}
	return filestore.New(path, passphrase)
}

func runRegister(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "contact phone (optional)")
	fs.Parse(args)

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	if err := api.Register(ctx, *username, *email, password, *phone); err != nil {
		return err
	}
	fmt.Println("Account created. Run 'gasguard login' to sign in.")
	return nil
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := api.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", user.Username, user.Email)
	return nil
}

func runProfile(ctx context.Context, api *client.Client) error {
	user, err := api.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("ID:       %s\n", user.ID)
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email:    %s\n", user.Email)
	if user.Phone != "" {
		fmt.Printf("Phone:    %s\n", user.Phone)
	}
	return nil
}

func runUpdate(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	email := fs.String("email", "", "new email")
	phone := fs.String("phone", "", "new phone")
	changePassword := fs.Bool("password", false, "prompt for a new password")
	fs.Parse(args)

	update := client.UserUpdate{Email: *email, Phone: *phone}
	if *changePassword {
		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		update.Password = password
	}

	if err := api.UpdateUser(ctx, update); err != nil {
		return err
	}
	fmt.Println("Account updated.")
	return nil
}

func runDeleteAccount(ctx context.Context, api *client.Client) error {
	fmt.Print("Delete this account and all its data? Type 'yes' to confirm: ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		fmt.Println("Aborted.")
		return nil
	}
	if err := api.DeleteUser(ctx); err != nil {
		return err
	}
	fmt.Println("Account deleted and local credentials cleared.")
	return nil
}

func runStatus(ctx context.Context, api *client.Client) error {
	gas, err := api.GasValue(ctx)
	if err != nil {
		return err
	}
	fan, err := api.FanState(ctx)
	if err != nil {
		return err
	}
	valve, err := api.ValveState(ctx)
	if err != nil {
		return err
	}

	unit := gas.Unit
	if unit == "" {
		unit = "ppm"
	}
	fmt.Printf("Gas concentration: %.3f %s\n", gas.Value, unit)
	fmt.Printf("Fan:               %s\n", fan.State)
	fmt.Printf("Valve:             %s\n", valve.State)
	return nil
}

func runAlerts(ctx context.Context, api *client.Client) error {
	notifications, err := api.DangerNotifications(ctx)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Println("No danger alerts.")
		return nil
	}
	for _, n := range notifications {
		stamp := ""
		if !n.CreatedAt.IsZero() {
			stamp = n.CreatedAt.Format(time.RFC3339) + "  "
		}
		fmt.Printf("%s[%s] %s\n", stamp, n.Level, n.Message)
	}
	return nil
}

func runValve(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 || (args[0] != "open" && args[0] != "close") {
		return errors.New("usage: gasguard valve open|close")
	}
	state, err := api.TriggerValve(ctx, args[0] == "open")
	if err != nil {
		return err
	}
	fmt.Printf("Valve is now %s\n", state.State)
	return nil
}

func runFan(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return errors.New("usage: gasguard fan on|off")
	}
	state, err := api.TriggerFan(ctx, args[0] == "on")
	if err != nil {
		return err
	}
	fmt.Printf("Fan is now %s\n", state.State)
	return nil
}

func runSession(api *client.Client) error {
	if !api.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	if exp, ok := api.SessionExpiry(); ok {
		fmt.Printf("Logged in, access token expires %s\n", exp.Format(time.RFC3339))
	} else {
		fmt.Println("Logged in.")
	}
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func usage() {
	fmt.Println("Usage: gasguard [-config path] [-v] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register -username u -email e [-phone p]   create an account")
	fmt.Println("  login -email e                             sign in")
	fmt.Println("  logout                                     discard stored credentials")
	fmt.Println("  profile                                    show the current account")
	fmt.Println("  update [-email e] [-phone p] [-password]   change account details")
	fmt.Println("  delete-account                             delete the account")
	fmt.Println("  status                                     gas, fan and valve readings")
	fmt.Println("  alerts                                     danger notification feed")
	fmt.Println("  valve open|close                           trigger the gas valve")
	fmt.Println("  fan on|off                                 trigger the extractor fan")
	fmt.Println("  session                                    local session state")
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
