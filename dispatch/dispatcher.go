// Package dispatch turns pen-up notifications into gesture runs.
package dispatch

import (
	"context"

	"github.com/ddvk/rmscribble/gesture"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/ddvk/rmscribble/settings"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// Dispatcher handles the pen-up events of one document. Events are
// processed one at a time; a batch whose first element was the first
// element of the previous batch is a re-emission and is ignored.
type Dispatcher struct {
	host  host.Host
	store settings.Store

	// guards lastProcessed and serialises HandlePenUp
	sem           *semaphore.Weighted
	lastProcessed string
	seen          bool
}

// New returns a Dispatcher issuing commands to h and reading settings
// from store. A nil store means defaults.
func New(h host.Host, store settings.Store) *Dispatcher {
	return &Dispatcher{
		host:  h,
		store: store,
		sem:   semaphore.NewWeighted(1),
	}
}

// Report describes what a pen-up event led to.
type Report struct {
	BatchID   string
	Duplicate bool
	Settings  settings.Settings
	Outcomes  []gesture.Outcome
}

// Deleted sums the elements removed across all outcomes.
func (r Report) Deleted() int {
	n := 0
	for _, o := range r.Outcomes {
		n += o.Deleted
	}
	return n
}

// Changed reports whether the event issued deletes to the host. It
// holds for failed events too, since deletes are not rolled back.
func (r Report) Changed() bool {
	for _, o := range r.Outcomes {
		if o.Recognized && !o.Skipped {
			return true
		}
	}
	return false
}

// LastProcessed returns the identifier of the last batch handled, if any.
func (d *Dispatcher) LastProcessed(ctx context.Context) (string, bool, error) {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return "", false, err
	}
	defer d.sem.Release(1)
	return d.lastProcessed, d.seen, nil
}

// HandlePenUp processes the elements created by one pen-up. It blocks
// while another event of the same document is being handled. The first
// host failure aborts the event and is returned.
func (d *Dispatcher) HandlePenUp(ctx context.Context, elements []host.Element) (Report, error) {
	var report Report
	if len(elements) == 0 {
		return report, nil
	}

	if err := d.sem.Acquire(ctx, 1); err != nil {
		return report, errors.Wrap(err, "waiting for previous pen-up")
	}
	defer d.sem.Release(1)

	batchID := elements[0].ID
	report.BatchID = batchID
	if d.seen && batchID == d.lastProcessed {
		log.Trace.Printf("[scribble] duplicate pen-up %s ignored", batchID)
		report.Duplicate = true
		return report, nil
	}
	d.lastProcessed = batchID
	d.seen = true

	s, err := settings.Resolve(ctx, d.store)
	if err != nil {
		return report, errors.Wrap(err, "load settings")
	}
	report.Settings = s
	log.Trace.Printf("[scribble] settings: %+v", s)
	log.Trace.Printf("[scribble] pen up, analyzing %d new elements", len(elements))

	enabled := s.Enabled()
	for _, el := range elements {
		if !el.IsStroke() {
			continue
		}
		for _, k := range enabled {
			out, err := gesture.For(k).Apply(ctx, gesture.Target{Element: el, Host: d.host, Margin: s.Margin})
			if errors.Is(err, gesture.ErrNotImplemented) {
				log.Warning.Printf("[scribble/%s] enabled but not implemented", k)
				continue
			}
			report.Outcomes = append(report.Outcomes, out)
			if err != nil {
				log.Error.Printf("[scribble/%s] element %s: %v", k, el.ID, err)
				return report, errors.Wrapf(err, "element %s", el.ID)
			}
		}
	}

	log.Trace.Printf("[scribble] end of analysis %s", batchID)
	return report, nil
}
