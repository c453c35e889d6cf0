package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/elsanchez/bakraload/internal/config"
	"github.com/elsanchez/bakraload/internal/controller"
	"github.com/elsanchez/bakraload/internal/logging"
	"github.com/elsanchez/bakraload/internal/opener"
	"github.com/elsanchez/bakraload/internal/saver"
	"github.com/elsanchez/bakraload/internal/status"
	"github.com/elsanchez/bakraload/pkg/client"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app holds what every subcommand needs
type app struct {
	cfg     *config.Config
	client  *client.Client
	logger  *slog.Logger
	verbose bool

	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

// newController builds a controller that prints to stdout
func (a *app) newController() *controller.Controller {
	return controller.New(a.client, status.NewWriter(a.stdout, a.verbose),
		controller.WithMode(a.cfg.ResponseMode()),
		controller.WithFormat(a.cfg.Format()),
		controller.WithListing(a.cfg.UI.Listing),
		controller.WithSaver(saver.New(a.cfg.Download.OutputDir)),
		controller.WithOpener(opener.NewBrowser()),
		controller.WithLogger(a.logger),
	)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("bakra", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "Config file (default: $XDG_CONFIG_HOME/bakraload/config.yaml)")
	serviceURL := global.String("url", "", "Service base URL (overrides config)")
	verbose := global.Bool("v", false, "Verbose output and debug logs")
	global.Usage = func() { printUsage(stderr) }

	if err := global.Parse(args); err != nil {
		return 2
	}
	args = global.Args()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *serviceURL != "" {
		cfg.Service.BaseURL = *serviceURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	a := &app{
		cfg:     cfg,
		verbose: *verbose,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	if f, ok := stdin.(*os.File); ok {
		a.interactive = term.IsTerminal(int(f.Fd()))
	}

	// Without a command an interactive terminal gets the dashboard
	if len(args) == 0 {
		if a.interactive {
			return a.runTUI(ctx)
		}
		printUsage(stderr)
		return 1
	}

	level := slog.LevelWarn
	if a.verbose {
		level = logging.ParseLevel(cfg.Log.Level)
		if level > slog.LevelDebug {
			level = slog.LevelDebug
		}
	}
	a.logger = logging.New(stderr, cfg.Log, level)
	a.client = a.newClient()

	switch args[0] {
	case "get":
		return a.handleGet(ctx, args[1:])
	case "bulk":
		return a.handleBulk(ctx, args[1:])
	case "list":
		return a.handleList(ctx)
	case "fetch":
		return a.handleFetch(ctx, args[1:])
	case "clear":
		return a.handleClear(ctx, args[1:])
	case "platforms":
		return a.handlePlatforms(ctx)
	case "tui":
		return a.runTUI(ctx)
	case "version":
		fmt.Fprintf(stdout, "bakra %s\n", client.Version)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		// Si el primer argumento parece una URL, asumir que es "get"
		if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
			return a.handleGet(ctx, args)
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func (a *app) newClient() *client.Client {
	opts := []client.Option{client.WithLogger(a.logger)}
	if a.cfg.Service.Timeout > 0 {
		opts = append(opts, client.WithTimeout(a.cfg.Service.Timeout))
	}
	if a.cfg.Service.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(a.cfg.Service.UserAgent))
	}
	return client.New(a.cfg.Service.BaseURL, opts...)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `bakraload (bakra) `+client.Version+`

Usage: bakra [-config file] [-url base] [-v] <command> [args]

Commands:
  get <url> [--format f]     Download one URL
  bulk [--format f] [file]   Download every line of file (or stdin)
  list                       List downloads stored by the service
  fetch <name> [--open]      Save a listed file or folder (zip) locally
  clear [--yes]              Remove every stored download
  platforms                  Show the platforms the service supports
  tui                        Start the dashboard
  version                    Show version
  help                       Show this help

Formats: default, mp4, mp3

Examples:
  bakra https://youtu.be/xxx                (shorthand for 'get')
  bakra get https://youtu.be/xxx --format mp3
  bakra bulk urls.txt
  cat urls.txt | bakra bulk
  bakra fetch bulk_A1B2C3
  bakra clear --yes`)
}
