package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/karupanerura/prefixcalc/internal/equation"
	"github.com/karupanerura/prefixcalc/internal/expression"
	"github.com/karupanerura/prefixcalc/internal/report"
	"github.com/karupanerura/prefixcalc/internal/server"
	"github.com/mattn/go-isatty"
)

type Option struct {
	File   string   `short:"f" long:"file" description:"[OPTIONAL] Equation file (.txt, .json or .yaml)" required:"false"`
	Exprs  []string `short:"e" long:"expr" description:"[OPTIONAL] Infix expression, may be repeated" required:"false"`
	Output string   `short:"o" long:"output" description:"[OPTIONAL] Write the result table to this file" required:"false"`
	Stage  string   `long:"stage" description:"[OPTIONAL] What to print" choice:"table" choice:"validate" choice:"prefix" choice:"evaluate" choice:"invalid" default:"table"`
	JSON   bool     `long:"json" description:"[OPTIONAL] Dump equations as JSON"`
	Listen string   `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the evaluation API" required:"false"`
	Debug  bool     `long:"debug" env:"PREFIXCALC_DEBUG" description:"[OPTIONAL] Log prefix conversion steps"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(os.Stdout)
			return 1
		}
	}
	if opt.File == "" && len(opt.Exprs) == 0 && opt.Listen == "" {
		parser.WriteHelp(os.Stdout)
		return 1
	}
	if opt.Debug {
		expression.EnableDebugLog()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// server mode
	if opt.Listen != "" {
		var loader func() ([]*equation.Equation, error)
		if opt.File != "" {
			loader = func() ([]*equation.Equation, error) {
				infixes, err := loadEquations(opt.File)
				if err != nil {
					return nil, err
				}
				return equation.ProcessAll(ctx, infixes)
			}
		}

		if err := serveEquations(ctx, opt.Listen, loader); err != nil {
			log.Printf("failed to serve equations: %v", err)
			return 1
		}
		return 0
	}

	infixes := opt.Exprs
	if opt.File != "" {
		loaded, err := loadEquations(opt.File)
		if err != nil {
			log.Printf("failed to load equations: %v", err)
			return 1
		}
		infixes = append(loaded, infixes...)
	}

	equations, err := equation.ProcessAll(ctx, infixes)
	if err != nil {
		log.Printf("failed to process equations: %v", err)
		return 1
	}

	if opt.Output != "" {
		if err := writeTableFile(opt.Output, equations); err != nil {
			log.Printf("failed to write result table: %v", err)
			return 1
		}
	}

	if opt.JSON {
		err = dumpJSON(os.Stdout, equations)
	} else {
		err = writeStage(os.Stdout, opt.Stage, equations)
	}
	if err != nil {
		log.Printf("failed to dump equations: %v", err)
		return 1
	}

	return 0
}

func loadEquations(filePath string) ([]string, error) {
	var parseEquations func(io.Reader) ([]string, error)
	switch filepath.Ext(filePath) {
	case ".txt", "":
		parseEquations = equation.ParseText
	case ".json":
		parseEquations = equation.ParseJSON
	case ".yaml", ".yml":
		parseEquations = equation.ParseYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	infixes, err := parseEquations(f)
	if err != nil {
		return nil, fmt.Errorf("equation.Parse: %w", err)
	}
	return infixes, nil
}

func writeStage(w io.Writer, stage string, equations []*equation.Equation) error {
	switch stage {
	case "validate":
		return report.WriteValidity(w, equations)
	case "prefix":
		return report.WritePrefixes(w, equations)
	case "evaluate":
		return report.WriteResults(w, equations)
	case "invalid":
		return report.WriteInvalid(w, equations)
	default:
		return report.WriteTable(w, equations)
	}
}

func writeTableFile(filePath string, equations []*equation.Equation) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("os.Create(%q): %w", filePath, err)
	}

	if err := report.WriteTable(f, equations); err != nil {
		_ = f.Close()
		return fmt.Errorf("report.WriteTable: %w", err)
	}
	return f.Close()
}

func serveEquations(ctx context.Context, listen string, loader func() ([]*equation.Equation, error)) error {
	handler, err := server.NewHTTPHandler(ctx, loader)
	if err != nil {
		return err
	}

	srv := http.Server{
		Handler: handler,
		Addr:    listen,
	}
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Printf("failed to shutdown server: %v", err)
		}
	}()

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
