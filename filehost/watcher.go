package filehost

import (
	"context"

	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// PenUpFunc receives the lines appended to a page by one write.
type PenUpFunc func(ctx context.Context, elements []host.Element) error

// Watcher turns writes to page files into pen-up batches.
type Watcher struct {
	doc     *Document
	onPenUp PenUpFunc
	fs      *fsnotify.Watcher
}

// NewWatcher starts watching the document directory.
func NewWatcher(doc *Document, onPenUp PenUpFunc) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	if err := fs.Add(doc.Dir()); err != nil {
		fs.Close()
		return nil, errors.Wrapf(err, "watch %s", doc.Dir())
	}
	return &Watcher{doc: doc, onPenUp: onPenUp, fs: fs}, nil
}

// Run handles events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Error.Println("watcher:", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	num, ok := PageNumber(event.Name)
	if !ok {
		return
	}

	elements, err := w.doc.Reload(num)
	if err != nil {
		// most likely a partial write; the next event will pick it up
		log.Trace.Printf("page %d not readable yet: %v", num, err)
		return
	}
	if len(elements) == 0 {
		return
	}

	log.Trace.Printf("page %d: %d new lines", num, len(elements))
	if err := w.onPenUp(ctx, elements); err != nil {
		log.Error.Printf("page %d: %v", num, err)
	}
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
