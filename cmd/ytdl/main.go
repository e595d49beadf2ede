// Command ytdl is the terminal front end: it downloads a single URL with a
// live progress view and exposes the history, playlist, cookie and settings
// helpers shared with the desktop app.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ytget/yt-dlgui/internal/services"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const shutdownTimeout = 10 * time.Second

var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, svc *services.Services, args []string, out io.Writer) error
}

var commands = []command{
	{"get", "download a URL", runGet},
	{"playlist", "list the videos of a playlist", runPlaylist},
	{"history", "show recent downloads", runHistory},
	{"cookies", "export browser cookies to a Netscape cookies file", runCookies},
	{"settings", "show, locate or reset saved settings", runSettings},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	if args[0] == "version" || args[0] == "--version" {
		fmt.Fprintf(stdout, "ytdl %s\n", version)
		return 0
	}

	cmd, ok := lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "ytdl: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	svc, err := services.Open(services.Options{LogToFile: true})
	if err != nil {
		fmt.Fprintf(stderr, "ytdl: %v\n", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := svc.Close(ctx); err != nil {
			fmt.Fprintf(stderr, "ytdl: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, svc, args[1:], stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "ytdl %s: %v\n", cmd.name, err)
			return 2
		}
		fmt.Fprintf(stderr, "ytdl %s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ytdl <command> [flags] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "version", "print the version")
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("ytdl "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func singleArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: expected exactly one %s", errUsage, what)
	}
	return fs.Arg(0), nil
}
