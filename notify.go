package piecetable

import (
	"context"
	"fmt"

	"github.com/guiguan/caster"
)

// ChangeKind tells insertions from deletions.
type ChangeKind int8

// Kinds of changes.
const (
	Inserted ChangeKind = iota
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Inserted:
		return "insert"
	case Deleted:
		return "delete"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change describes a successful edit. Start and End are grapheme positions:
// for insertions [Start, End) is the inserted text after the edit, for
// deletions it is the removed range before the edit. Text is set for
// insertions only.
type Change struct {
	Kind       ChangeKind
	Start, End int
	Text       string
}

// Subscribe registers a collaborator for change notifications. Every
// successful edit is published as a Change, in edit order. The returned
// channel is closed when ctx is done or the document is closed; cancel ctx to
// unsubscribe.
//
// Edits never wait for subscribers. A subscriber which falls behind by more
// than capacity changes misses the changes published in the meantime.
func (doc *Document) Subscribe(ctx context.Context, capacity uint) (<-chan Change, error) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return nil, ErrClosed
	}
	if doc.cast == nil {
		doc.cast = caster.New(context.Background())
	}
	sub, _ := doc.cast.Sub(ctx, capacity)
	ch := make(chan Change, capacity)
	go func() {
		defer close(ch)
		for msg := range sub {
			c, ok := msg.(Change)
			if !ok {
				continue
			}
			select {
			case ch <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Close stops change notifications and closes all subscriber channels. The
// document remains usable, but cannot be subscribed to any more.
func (doc *Document) Close() {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.closed = true
	if doc.cast != nil {
		doc.cast.Close()
	}
}

// publish hands c to the subscribers, if there are any. It does not block on
// subscribers which are not ready to receive.
func (doc *Document) publish(c Change) {
	doc.mu.Lock()
	cast := doc.cast
	doc.mu.Unlock()
	if cast != nil {
		cast.TryPub(c)
	}
}
