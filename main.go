package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/yt-dlgui/internal/services"
	"github.com/ytget/yt-dlgui/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-dlgui"
	AppName = "yt-dlgui"

	WindowWidth  = 560
	WindowHeight = 420

	shutdownTimeout = 10 * time.Second
)

func main() {
	svc, err := services.Open(services.Options{LogToFile: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
	svc.Logger.Info("starting", zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myApp.SetIcon(ui.AppIconResource)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.NewRootUI(myWindow, myApp, svc.Controller, svc.Settings, svc.History, svc.Logger)

	myWindow.ShowAndRun()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := svc.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
	}
}
