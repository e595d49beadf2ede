package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/download"
	"github.com/ytget/yt-dlgui/internal/model"
	"github.com/ytget/yt-dlgui/internal/platform"
	"github.com/ytget/yt-dlgui/internal/services"
	"github.com/ytget/yt-dlgui/internal/tui"
)

var errCancelled = errors.New("download cancelled")

func runGet(ctx context.Context, svc *services.Services, args []string, out io.Writer) error {
	fs := newFlagSet("get", out)
	formatFlag := fs.String("format", "default", "output format: default, mp4, mkv, mp3 or aac")
	plain := fs.Bool("plain", false, "print a simple progress bar instead of the interactive view")
	outDir := fs.String("o", "", "output directory (overrides settings for this run)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	url, err := singleArg(fs, "URL")
	if err != nil {
		return err
	}
	format, err := model.ParseFormat(*formatFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	settings := svc.Settings.Effective()
	if *outDir != "" {
		settings.OutputDirectory = *outDir
	}
	if settings.OutputDirectory != "" {
		if err := platform.CreateDirectoryIfNotExists(settings.OutputDirectory); err != nil {
			return err
		}
	}

	feed := tui.NewStateFeed()
	svc.Controller.SetUpdateCallback(feed.Publish)

	var final model.DownloadState
	if *plain {
		final, err = downloadPlain(ctx, svc.Controller, feed, url, format, settings, out)
	} else {
		final, err = downloadInteractive(ctx, svc.Controller, feed, url, format, settings)
	}
	if err != nil {
		return err
	}

	svc.Logger.Info("download finished", zap.String("url", url), zap.Stringer("phase", final.Phase))
	switch final.Phase {
	case model.PhaseCompleted:
		fmt.Fprintf(out, "Saved %s\n", final.OutputPath)
		return nil
	case model.PhaseError:
		return errors.New(final.Message)
	default:
		return errCancelled
	}
}

func downloadInteractive(ctx context.Context, d download.Downloader, feed *tui.StateFeed, url string, format model.Format, settings config.Settings) (model.DownloadState, error) {
	p := tea.NewProgram(tui.NewModel(d, feed, url, format, settings), tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			d.Cancel()
			return model.IdleState(), nil
		}
		return model.DownloadState{}, err
	}
	m, ok := result.(tui.Model)
	if !ok {
		return model.DownloadState{}, fmt.Errorf("unexpected model type %T", result)
	}
	if m.Err() != nil {
		return model.DownloadState{}, m.Err()
	}
	return m.State(), nil
}

func downloadPlain(ctx context.Context, d download.Downloader, feed *tui.StateFeed, url string, format model.Format, settings config.Settings, out io.Writer) (model.DownloadState, error) {
	if err := d.Start(url, format, settings); err != nil {
		return model.DownloadState{}, err
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	defer bar.Exit()

	done := ctx.Done()
	for {
		select {
		case <-done:
			d.Cancel()
			done = nil
		case s := <-feed.C():
			switch s.Phase {
			case model.PhaseDownloading:
				bar.Describe(plainDescription(s))
				_ = bar.Set(int(s.Fraction * 100))
			case model.PhasePostProcessing:
				bar.Describe(s.Status)
				_ = bar.Set(100)
			default:
				// An Error from a progress line is not final; wait for the outcome
				if d.Running() {
					bar.Describe(s.Message)
					continue
				}
				s = d.State()
				if s.Phase == model.PhaseCompleted {
					_ = bar.Finish()
				}
				fmt.Fprintln(out)
				return s, nil
			}
		}
	}
}

func plainDescription(s model.DownloadState) string {
	name := s.Filename
	if name == "" {
		name = platform.DefaultFilename
	}
	return fmt.Sprintf("%s  %s  ETA %s", name, s.Speed, s.ETA)
}
