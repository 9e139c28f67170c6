package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/enferex/treetop/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	pollSeconds := flag.Int("d", 0, "poll interval in seconds (polling backend only)")
	pollOnly := flag.Bool("poll-only", false, "force the polling backend")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	showHelp := flag.Bool("h", false, "display this help screen")
	flag.Parse()

	if *showHelp {
		usage()
		return 0
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "treetop: please provide a watch list")
		usage()
		return 2
	}
	if *pollSeconds < 0 {
		fmt.Fprintln(os.Stderr, "treetop: incorrect poll interval specified")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: flag.Arg(0),
		PrefsPath:  *prefsPath,
		PollEvery:  *pollSeconds,
		ForcePoll:  *pollOnly,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "treetop: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: treetop [flags] <watchlist>

Watch a set of text/log files from one terminal. The watch list names
one file per line; '#' starts a comment.

Flags:
`)
	flag.PrintDefaults()
}
