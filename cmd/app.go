// Package cmd implements the CLI application to manage a ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ledger"
	"github.com/etnz/ledger/sqlite"
	"github.com/google/subcommands"
)

const (
	EnvLedgerFile = "LDG_LEDGER_FILE"
	EnvPricesFile = "LDG_PRICES_FILE"
	EnvVerbose    = "LDG_VERBOSE"
)

// Commands lists every ldg subcommand.
var Commands = []subcommands.Command{
	&initCmd{},
	&addAccountCmd{},
	&delAccountCmd{},
	&accountsCmd{},
	&summaryCmd{},
	&txCmd{},
	addCmd(),
	unitsCmd(),
	adjustCmd(),
	&recurringCmd{},
	&valueCmd{},
	&delCmd{},
	&projectCmd{},
	&materializeCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.json", "Path to the ledger file. Files ending in .db, .sqlite or .sqlite3 are SQLite databases. Env: "+EnvLedgerFile)
var pricesFile = flag.String("prices-file", "prices.json", "Path to the price sources file. Env: "+EnvPricesFile)
var Verbose = flag.Bool("v", false, "Enable debug logging. Env: "+EnvVerbose)
var raw = flag.Bool("raw", false, "Print reports as raw markdown.")

// now is the clock of every command.
var now = time.Now

var stdout io.Writer = os.Stdout

// envFlags maps global flags to the environment variables overriding their
// defaults.
var envFlags = map[string]string{
	"ledger-file": EnvLedgerFile,
	"prices-file": EnvPricesFile,
	"v":           EnvVerbose,
}

// ApplyEnv sets the global flags from the environment. It must be called
// before parsing the command line, which takes precedence.
func ApplyEnv(f *flag.FlagSet) error {
	for name, key := range envFlags {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" || f.Lookup(name) == nil {
			continue
		}
		if err := f.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
	}
	return nil
}

// isSQLite tells whether path designates a SQLite database.
func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// openStore opens the store of the ledger file.
func openStore(path string) (ledger.Store, func() error, error) {
	if !isSQLite(path) {
		return ledger.FileStore{Path: path}, func() error { return nil }, nil
	}
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

// workspace is a loaded ledger and the store it comes from.
type workspace struct {
	store    ledger.Store
	close    func() error
	accounts *ledger.Accounts
}

// openLedger loads the ledger file, then materializes the recurring
// transactions due now and saves them if any.
func openLedger(ctx context.Context) (*workspace, error) {
	log := Logger(ctx)
	if _, err := os.Stat(*ledgerFile); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ledger %q does not exist, create it with 'ldg init': %w", *ledgerFile, err)
	}
	store, closer, err := openStore(*ledgerFile)
	if err != nil {
		return nil, err
	}
	l, err := store.Load(ctx)
	if err != nil {
		closer()
		return nil, err
	}
	w := &workspace{store: store, close: closer, accounts: l}
	log.Debug().Str("path", *ledgerFile).Int("accounts", l.Len()).Msg("ledger loaded")

	if n := l.Materialize(now()); n > 0 {
		log.Info().Int("count", n).Time("watermark", l.Watermark()).Msg("recurring transactions materialized")
		if err := w.save(ctx); err != nil {
			w.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *workspace) save(ctx context.Context) error {
	if err := w.store.Save(ctx, w.accounts); err != nil {
		return err
	}
	Logger(ctx).Debug().Str("path", *ledgerFile).Msg("ledger saved")
	return nil
}

func (w *workspace) Close() error { return w.close() }

// account returns the account named by the first argument.
func (w *workspace) account(f *flag.FlagSet) (*ledger.Account, error) {
	if f.NArg() == 0 {
		return nil, errors.New("missing account name")
	}
	return w.accounts.Account(f.Arg(0))
}

// printMarkdown renders markdown for the terminal, unless raw output was
// requested.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// failf prints an error and returns ExitFailure.
func failf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// usagef prints an error and returns ExitUsageError.
func usagef(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
