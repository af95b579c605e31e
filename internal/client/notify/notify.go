// Package notify is the user-facing notification channel of the client: the
// terminal analogue of the web client's dismissible toasts. Every fetch or
// mutation failure is converted into one of these notifications at the
// operation boundary; none propagate as unhandled errors into the UI loop.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Notification is one user-visible message.
type Notification struct {
	Kind    Kind
	Title   string
	Message string
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Notify(n Notification)
}

// Success reports a completed action.
func Success(n Notifier, title, message string) {
	n.Notify(Notification{Kind: KindSuccess, Title: title, Message: message})
}

// Error reports a failed action.
func Error(n Notifier, title, message string) {
	n.Notify(Notification{Kind: KindError, Title: title, Message: message})
}

// Warning reports a blocked action (client-side validation).
func Warning(n Notifier, title, message string) {
	n.Notify(Notification{Kind: KindWarning, Title: title, Message: message})
}

// Writer prints notifications to an io.Writer, one per line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Notify(n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu    sync.Mutex
	Items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Items = append(r.Items, n)
}

// All returns a copy of the captured notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.Items...)
}

// ByKind returns captured notifications of one kind.
func (r *Recorder) ByKind(k Kind) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.Items {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}
