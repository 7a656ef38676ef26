package commands

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const APP = "uhppoted-app-rollover"

type Options struct {
	Debug bool
}

// command holds the options common to all commands that access Google Drive/Sheets.
type command struct {
	workdir     string
	credentials string
	tokens      string
	apikey      string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, reports, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&c.apikey, "apikey", c.apikey, "Path for the 'apikey.json' file")

	return flagset
}

func (c *command) tokenDir() string {
	if c.tokens != "" {
		return c.tokens
	}

	return filepath.Join(c.workdir, ".google")
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.apikey) == "" {
		return fmt.Errorf("--apikey is a required option")
	}

	return nil
}

// env replaces the compiled in defaults with any values set in the environment.
func (c *command) env() {
	if v := strings.TrimSpace(os.Getenv("ROLLOVER_WORKDIR")); v != "" {
		c.workdir = v
	}

	if v := strings.TrimSpace(os.Getenv("ROLLOVER_CREDENTIALS")); v != "" {
		c.credentials = v
	}

	if v := strings.TrimSpace(os.Getenv("ROLLOVER_TOKENS")); v != "" {
		c.tokens = v
	}

	if v := strings.TrimSpace(os.Getenv("ROLLOVER_APIKEY")); v != "" {
		c.apikey = v
	}
}

// Configure loads an optional .env file from the current directory and applies the
// ROLLOVER_* environment variables to the command defaults. Command line flags take
// precedence.
func Configure() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warnf("could not load .env file (%v)", err)
	}

	RolloverCmd.env()
	GetCmd.env()
	AuthoriseCmd.env()

	if v := strings.TrimSpace(os.Getenv("ROLLOVER_WORKERS")); v != "" {
		if N, err := strconv.Atoi(v); err != nil || N < 1 {
			warnf("invalid ROLLOVER_WORKERS value '%v'", v)
		} else {
			RolloverCmd.workers = N
		}
	}
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}

func errorf(format string, args ...any) {
	log.Printf("%-5s %s", "ERROR", fmt.Sprintf(format, args...))
}
