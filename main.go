package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ddvk/rmscribble/dispatch"
	"github.com/ddvk/rmscribble/filehost"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/ddvk/rmscribble/settings"
	"github.com/ddvk/rmscribble/shell"
	flag "github.com/ogier/pflag"
)

const Version = "0.1.0"

func settingsStore(path string) (*settings.FileStore, error) {
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return settings.NewFileStore(path), nil
}

// checkModes rejects flag combinations where one flag would be ignored.
func checkModes(hostURL, serve string, watch bool) error {
	if serve != "" && watch {
		return errors.New("--serve and --watch are exclusive")
	}
	if hostURL != "" && serve == "" {
		return errors.New("--host needs --serve, the shell and watcher work on --doc")
	}
	return nil
}

func run() error {
	docDir := flag.StringP("doc", "d", ".", "document directory holding the page files")
	serve := flag.StringP("serve", "s", "", "listen address of the pen-up receiver, e.g. :8080")
	watch := flag.BoolP("watch", "w", false, "watch the page files for new strokes")
	hostURL := flag.String("host", "", "url of a remote document host")
	settingsPath := flag.String("settings", "", "settings file")
	jsonOutput := flag.BoolP("json", "j", false, "json output in the shell")
	version := flag.BoolP("version", "v", false, "print the version")
	flag.Parse()

	if *version {
		fmt.Println(Version)
		return nil
	}

	store, err := settingsStore(*settingsPath)
	if err != nil {
		return err
	}

	if err := checkModes(*hostURL, *serve, *watch); err != nil {
		return err
	}

	if *hostURL != "" {
		remote := host.NewRemote(*hostURL, &http.Client{Timeout: 30 * time.Second})
		server := NewApiServer(remote, store, os.Getenv("RMSCRIBBLE_SECRET"), nil)
		return runServerMode(*serve, server)
	}

	doc, err := filehost.Open(*docDir)
	if err != nil {
		return err
	}
	if *serve != "" {
		server := NewApiServer(doc, store, os.Getenv("RMSCRIBBLE_SECRET"), doc.Save)
		return runServerMode(*serve, server)
	}

	dispatcher := dispatch.New(doc, store)
	if *watch {
		return runWatchMode(doc, dispatcher)
	}

	ctx := &shell.ShellCtxt{
		Doc:        doc,
		Dispatcher: dispatcher,
		Store:      store,
		JSONOutput: *jsonOutput,
	}
	return shell.RunShell(ctx, flag.Args())
}

// penUpSaver runs a pen-up batch and persists whatever it deleted, also
// when the batch failed halfway.
func penUpSaver(dispatcher *dispatch.Dispatcher, save func() error) filehost.PenUpFunc {
	return func(ctx context.Context, elements []host.Element) error {
		report, err := dispatcher.HandlePenUp(ctx, elements)
		if report.Changed() {
			log.Info.Printf("removed %d elements", report.Deleted())
			if saveErr := save(); saveErr != nil {
				return saveErr
			}
		}
		return err
	}
}

func runWatchMode(doc *filehost.Document, dispatcher *dispatch.Dispatcher) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher, err := filehost.NewWatcher(doc, penUpSaver(dispatcher, doc.Save))
	if err != nil {
		return err
	}
	defer watcher.Close()

	log.Info.Printf("watching %s", doc.Dir())
	err = watcher.Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

func main() {
	log.InitLog()

	if err := run(); err != nil {
		log.Error.Println(err)
		os.Exit(1)
	}
}
