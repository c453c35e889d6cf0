package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elsanchez/bakraload/internal/controller"
	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/status"
)

// parseArgs accepts flags before or after the positional arguments
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func formatFlag(fs *flag.FlagSet) *string {
	return fs.String("format", "", "Output format (default, mp4, mp3)")
}

func (a *app) handleGet(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	format := formatFlag(fs)

	positional, err := parseArgs(fs, args)
	if err != nil {
		return 2
	}

	f, err := domain.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	in := controller.Input{Format: f}
	if len(positional) > 0 {
		in.Text = positional[0]
	}

	if _, err := a.newController().Dispatch(ctx, controller.IntentSubmitSingle, in); err != nil {
		return 1
	}
	return 0
}

func (a *app) handleBulk(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("bulk", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	format := formatFlag(fs)

	positional, err := parseArgs(fs, args)
	if err != nil {
		return 2
	}

	f, err := domain.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	var src io.Reader = a.stdin
	if len(positional) > 0 && positional[0] != "-" {
		file, err := os.Open(positional[0])
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		defer file.Close()
		src = file
	} else if a.interactive {
		fmt.Fprintln(a.stderr, "Enter URLs, one per line. Finish with Ctrl+D.")
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: read urls: %v\n", err)
		return 1
	}

	in := controller.Input{Text: string(raw), Format: f}
	if _, err := a.newController().Dispatch(ctx, controller.IntentSubmitBulk, in); err != nil {
		return 1
	}
	return 0
}

func (a *app) handleList(ctx context.Context) int {
	ctrl := a.newController()

	out, err := ctrl.Dispatch(ctx, controller.IntentRefreshListing, controller.Input{})
	if err != nil || out.Failed {
		return 1
	}

	listing := ctrl.Listing()
	if listing.Empty() {
		fmt.Fprintln(a.stdout, "No downloads yet. Start downloading some content!")
		return 0
	}

	fmt.Fprintf(a.stdout, "Downloads (%d):\n\n", len(listing.Items))
	for _, item := range listing.Items {
		if item.IsFolder() {
			fmt.Fprintf(a.stdout, "  📁 %-40s %d files\n", item.Name, item.FileCount)
		} else {
			fmt.Fprintf(a.stdout, "  📄 %-40s %s\n", item.Name, status.FormatSize(item.Size))
		}
	}
	return 0
}

func (a *app) handleFetch(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	open := fs.Bool("open", false, "Open in the browser instead of saving")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return 2
	}
	if len(positional) == 0 {
		fmt.Fprintln(a.stderr, "Error: item name is required")
		fmt.Fprintln(a.stderr, "Usage: bakra fetch <name> [--open]")
		return 1
	}

	ctrl := a.newController()
	if out, err := ctrl.Dispatch(ctx, controller.IntentRefreshListing, controller.Input{}); err != nil || out.Failed {
		return 1
	}

	intent := controller.IntentSaveItem
	if *open {
		intent = controller.IntentRetrieveItem
	}
	if _, err := ctrl.Dispatch(ctx, intent, controller.Input{Name: positional[0]}); err != nil {
		return 1
	}
	return 0
}

func (a *app) handleClear(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	yes := fs.Bool("yes", false, "Do not ask for confirmation")

	if _, err := parseArgs(fs, args); err != nil {
		return 2
	}

	var confirm controller.Confirmer = controller.ConfirmFunc(a.prompt)
	if *yes {
		confirm = controller.Approve
	} else if !a.interactive {
		fmt.Fprintln(a.stderr, "Error: refusing to clear without a terminal; pass --yes")
		return 1
	}

	out, err := a.newController().Dispatch(ctx, controller.IntentClearAll, controller.Input{Confirmer: confirm})
	if errors.Is(err, domain.ErrNotConfirmed) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return 0
	}
	if err != nil || out.Failed {
		return 1
	}
	return 0
}

// prompt asks a yes/no question on the terminal. Anything but y/yes declines.
func (a *app) prompt(question string) bool {
	fmt.Fprintf(a.stderr, "%s [y/N] ", question)

	answer, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) handlePlatforms(ctx context.Context) int {
	catalog, err := a.client.SupportedPlatforms(ctx)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(a.stdout, "Video platforms:")
	for _, p := range catalog.VideoPlatforms {
		fmt.Fprintf(a.stdout, "  %s\n", p)
	}
	fmt.Fprintln(a.stdout, "\nSocial platforms:")
	for _, p := range catalog.SocialPlatforms {
		fmt.Fprintf(a.stdout, "  %s\n", p)
	}
	if len(catalog.Features) > 0 {
		fmt.Fprintln(a.stdout, "\nFeatures:")
		for _, f := range catalog.Features {
			fmt.Fprintf(a.stdout, "  %s\n", f)
		}
	}
	return 0
}
