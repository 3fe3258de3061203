// Command cptoyc is the outer CLI driver for the core: a single
// positional source file argument, no other flag processing by the
// core itself (spec §6). Everything the core needs beyond the path
// (language dialect, diagnostics strictness) comes from an optional
// .cptoyc.kdl project config (internal/config). The only flag this
// binary itself owns is -dump-raw-tokens, a debug aid that flips the
// lexer into raw mode instead of running it behind the preprocessor
// shell.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cptoyc/internal/cerrors"
	"github.com/standardbeagle/cptoyc/internal/config"
	"github.com/standardbeagle/cptoyc/internal/debug"
	"github.com/standardbeagle/cptoyc/internal/filemgr"
	"github.com/standardbeagle/cptoyc/internal/ident"
	"github.com/standardbeagle/cptoyc/internal/lexer"
	"github.com/standardbeagle/cptoyc/internal/preprocessor"
	"github.com/standardbeagle/cptoyc/internal/srcbuf"
	"github.com/standardbeagle/cptoyc/internal/srcmgr"
	"github.com/standardbeagle/cptoyc/internal/token"
	"github.com/standardbeagle/cptoyc/internal/types"
	"github.com/standardbeagle/cptoyc/internal/version"
)

func main() {
	app := &cli.App{
		Name:      "cptoyc",
		Usage:     "tokenize a C source file",
		Version:   version.Version,
		ArgsUsage: "<file.c>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:   "dump-raw-tokens",
				Usage:  "lex in raw mode: no identifier interning, keyword mapping, or diagnostics",
				Hidden: true,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("cptoyc: missing source file argument", 1)
	}

	cfg, err := config.LoadWithRoot(path, filepath.Dir(path))
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	fm := filemgr.New()
	entry, ok := fm.GetFile(path)
	if !ok {
		return cli.Exit(fmt.Sprintf("cptoyc: cannot open %s", path), 1)
	}

	buf, err := srcbuf.NewFromFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cptoyc: %v", err), 1)
	}

	mgr := srcmgr.New()
	fid := mgr.CreateMainFileID(entry, buf)

	sink := cerrors.NewCollectingSink()

	ids := ident.NewTable()
	ids.AddKeywords(ident.LangOptions{C99: cfg.Lang.C99, Bool: cfg.Lang.Bool})

	if c.Bool("dump-raw-tokens") {
		dumpRawTokens(mgr, ids, fid, cfg)
	} else {
		runPreprocessor(mgr, ids, sink, fid, cfg)
	}

	renderDiagnostics(mgr, sink, cfg.Diagnostics.Quiet)
	if sink.HasErrors() {
		return cli.Exit(summarizeErrors(sink), 1)
	}
	return nil
}

// summarizeErrors aggregates every error/fatal diagnostic the sink
// collected into a single MultiError, whose Error() becomes the
// process's final exit message — one line regardless of how many
// diagnostics fired, instead of repeating the per-diagnostic output
// renderDiagnostics already printed to stderr.
func summarizeErrors(sink *cerrors.CollectingSink) string {
	var errs []error
	for _, d := range sink.Diagnostics {
		if d.Kind >= cerrors.KindError {
			errs = append(errs, errors.New(d.String()))
		}
	}
	return cerrors.NewMultiError(errs).Error()
}

// dumpRawTokens lexes fid in raw mode, printing each token's kind,
// spelling and compact location without identifier interning, keyword classification, or
// diagnostics — the mode spec §4.6 describes as "far faster... used by
// -dump-raw-tokens". When cfg.Lexer.KeepWhitespace is set, whitespace
// and comments are returned as their own tokens too, so the printed
// stream's spellings concatenate back to the source byte-for-byte
// (spec §8's round-trip property).
func dumpRawTokens(mgr *srcmgr.Manager, ids *ident.Table, fid types.FileID, cfg *config.Config) {
	lx := lexer.New(mgr, ids, cerrors.NopSink{}, fid)
	lx.SetRawMode(true)
	lx.SetKeepWhitespaceMode(cfg.Lexer.KeepWhitespace)

	var tok token.Token
	for {
		lx.Lex(&tok)
		tokFID, offset := mgr.Decompose(tok.Location())
		spelling := mgr.GetBuffer(tokFID).Bytes()[offset : offset+tok.Length()]
		fmt.Printf("%s %q %s\n", token.Name(tok.Kind()), spelling, mgr.LocationString(tok.Location()))
		if tok.Is(token.EOF) {
			break
		}
	}
}

// runPreprocessor drives the include-macro stack for a single file,
// printing each token's kind, location, and (for identifiers) spelling.
func runPreprocessor(mgr *srcmgr.Manager, ids *ident.Table, sink cerrors.Sink, fid types.FileID, cfg *config.Config) {
	pp := preprocessor.New(mgr, ids)
	pp.SetLangOptions(cfg.Lang.C99, cfg.Lang.Bool)
	pp.SetSink(sink)
	pp.EnterMainSourceFile()

	var tok token.Token
	for {
		pp.Lex(&tok)
		printToken(mgr, &tok)
		if tok.Is(token.EOF) {
			break
		}
	}
}

func printToken(mgr *srcmgr.Manager, tok *token.Token) {
	loc := mgr.LocationString(tok.Location())
	kindName := token.Name(tok.Kind())
	switch {
	case tok.IdentifierInfo() != nil:
		debug.LogLex("%s %q at %s", kindName, tok.IdentifierInfo().Name(), loc)
		fmt.Printf("%-20s %-15q %s\n", kindName, tok.IdentifierInfo().Name(), loc)
	case tok.IsLiteral():
		fmt.Printf("%-20s %-15q %s\n", kindName, string(tok.LiteralData()), loc)
	default:
		spelling, _ := token.SimpleSpelling(tok.Kind())
		fmt.Printf("%-20s %-15q %s\n", kindName, spelling, loc)
	}
}

// renderDiagnostics is the CLI's own formatting/exit-code policy (spec
// §6 keeps this a collaborator concern, not the core's); it reads each
// collected Diagnostic's (file, offset) pair back into a line/column via
// the source manager.
func renderDiagnostics(mgr *srcmgr.Manager, sink *cerrors.CollectingSink, quiet bool) {
	if quiet {
		return
	}
	for _, d := range sink.Diagnostics {
		loc := mgr.GetFileLocWithOffset(mgr.GetLocationForStartOfFile(d.File), uint32(d.Offset))
		presumed := mgr.GetPresumedLoc(loc)
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", presumed.Filename, presumed.Line, presumed.Column, d.Kind, d.Message)
	}
}
