package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var AuthoriseCmd = Authorise{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		debug:       false,
	},

	port:    8085,
	timeout: 5 * time.Minute,
}

type Authorise struct {
	command
	port    uint
	timeout time.Duration
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises uhppoted-app-rollover to access Google Drive and Google Sheets"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises uhppoted-app-rollover to access Google Drive and Google Sheets. The authorisation")
	fmt.Println("  token is saved to the tokens directory and refreshed automatically on subsequent runs")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s authorise --credentials "credentials.json" --port 8085`+"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, reports, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.tokens, "tokens", cmd.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.UintVar(&cmd.port, "port", cmd.port, "localhost port for the OAuth2 redirect URL")
	flagset.DurationVar(&cmd.timeout, "timeout", cmd.timeout, "Time limit for completing the authorisation")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if cmd.port == 0 || cmd.port > 65535 {
		return fmt.Errorf("invalid --port %v", cmd.port)
	}

	if err := authenticate(cmd.credentials, DRIVE, cmd.tokenDir(), cmd.port, cmd.timeout); err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	return nil
}

func authenticate(credentials, scope, dir string, port uint, timeout time.Duration) error {
	// ... get OAuth2 configuration
	config, err := oauthConfig(credentials, scope)
	if err != nil {
		return err
	}

	tokens := tokenFile(credentials, scope, dir)
	config.RedirectURL = fmt.Sprintf("http://localhost:%v/", port)

	// ... start HTTP server on localhost
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%v", port))
	if err != nil {
		return err
	}

	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if e := rq.FormValue("error"); e != "" {
			http.Error(w, fmt.Sprintf("Authorisation failed (%v)", e), http.StatusBadRequest)
			return
		}

		state := rq.FormValue("state")
		code := rq.FormValue("code")

		if state != "state-token" || code == "" {
			http.Error(w, "Invalid authorisation response", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "Authorised - you may close this window and return to the terminal.")

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			errorf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Printf("Open the following link in your browser to authorise %s:\n\n  %v\n\n", APP, url)

	if err := exec.Command(BROWSER, url).Start(); err != nil {
		fmt.Println("Could not open the authorisation page in your browser - please open the link manually")
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		fmt.Printf("\n.. cancelled\n\n")
		return nil

	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for authorisation")

	case code := <-authorised:
		token, err := config.Exchange(context.Background(), code)
		if err != nil {
			return fmt.Errorf("unable to retrieve token from web (%w)", err)
		}

		if err := saveToken(tokens, token); err != nil {
			return err
		}

		infof("saved authorisation token to %s", tokens)
	}

	return nil
}
