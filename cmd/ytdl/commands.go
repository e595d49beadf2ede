package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/cookies"
	"github.com/ytget/yt-dlgui/internal/platform"
	"github.com/ytget/yt-dlgui/internal/services"
)

const (
	defaultHistoryLimit = 20
	defaultCookieDomain = "youtube.com"
	cookiesFileName     = "cookies.txt"
	historyTimeFormat   = "2006-01-02 15:04"
)

var errHistoryDisabled = errors.New("download history is not available")

func runPlaylist(ctx context.Context, svc *services.Services, args []string, out io.Writer) error {
	fs := newFlagSet("playlist", out)
	urlsOnly := fs.Bool("urls", false, "print only the video URLs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	url, err := singleArg(fs, "playlist URL")
	if err != nil {
		return err
	}

	playlist, err := platform.NewPlaylistParserService().ParsePlaylist(ctx, url)
	if err != nil {
		return err
	}
	svc.Logger.Debug("playlist parsed", zap.String("id", playlist.ID), zap.Int("entries", len(playlist.Entries)))

	if *urlsOnly {
		for _, e := range playlist.Entries {
			fmt.Fprintln(out, e.URL)
		}
		return nil
	}

	fmt.Fprintf(out, "%s (%d videos)\n", playlist.Title, len(playlist.Entries))
	for _, e := range playlist.Entries {
		fmt.Fprintf(out, "%4d. %s\n      %s\n", e.Index, e.Title, e.URL)
	}
	return nil
}

func runHistory(ctx context.Context, svc *services.Services, args []string, out io.Writer) error {
	fs := newFlagSet("history", out)
	limit := fs.Int("n", defaultHistoryLimit, "number of entries to show")
	clearAll := fs.Bool("clear", false, "delete all history")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("%w: unexpected arguments", errUsage)
	}
	if svc.History == nil {
		return errHistoryDisabled
	}

	if *clearAll {
		if err := svc.History.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared")
		return nil
	}

	entries, err := svc.History.List(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No downloads yet")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tFORMAT\tDURATION\tTITLE")
	for _, e := range entries {
		duration := "-"
		if d := e.Duration(); d > 0 {
			duration = d.Round(time.Second).String()
		}
		title := e.GetDisplayTitle()
		if e.LastError != "" {
			title += " (" + firstLine(e.LastError) + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.StartedAt.Local().Format(historyTimeFormat), e.Status, e.Format, duration, title)
	}
	return tw.Flush()
}

func runCookies(ctx context.Context, svc *services.Services, args []string, out io.Writer) error {
	fs := newFlagSet("cookies", out)
	browser := fs.String("browser", "", "browser to read from ("+strings.Join(cookies.SupportedBrowsers(), ", ")+"); any when empty")
	domain := fs.String("domain", defaultCookieDomain, "cookie domain suffix")
	output := fs.String("out", "", "output file (defaults to cookies.txt in the data directory)")
	save := fs.Bool("save", false, "use the exported file as the cookies file in settings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("%w: unexpected arguments", errUsage)
	}

	path := *output
	if path == "" {
		path = filepath.Join(svc.DataDir, cookiesFileName)
	}

	n, err := cookies.NewExporter().Export(ctx, cookies.ExportOptions{
		Browser:    *browser,
		Domain:     *domain,
		OutputPath: path,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %d cookies to %s\n", n, path)

	if *save {
		settings := svc.Settings.Current()
		settings.CookiesFile = path
		if err := svc.Settings.Save(settings); err != nil {
			return err
		}
		fmt.Fprintln(out, "Cookies file saved in settings")
	}
	return nil
}

func runSettings(_ context.Context, svc *services.Services, args []string, out io.Writer) error {
	fs := newFlagSet("settings", out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	action := "show"
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: expected one of show, path, reset", errUsage)
	}
	if fs.NArg() == 1 {
		action = fs.Arg(0)
	}

	switch action {
	case "show":
		data, err := yaml.Marshal(svc.Settings.Effective())
		if err != nil {
			return fmt.Errorf("serialize settings: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "path":
		state := "not saved"
		if svc.Settings.Persist() {
			state = "saved"
		}
		fmt.Fprintf(out, "%s (%s)\n", svc.Settings.StorePath(), state)
		return nil
	case "reset":
		if err := svc.Settings.Save(config.Default()); err != nil {
			return err
		}
		fmt.Fprintln(out, "Settings reset to defaults")
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", errUsage, action)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
