package timer

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

type readResult struct {
	line string
	err  error
}

// Lines hands out lines from an input stream one request at a time.
//
// A single goroutine owns the reader and serves requests in order. Each
// request gets its own one-shot reply channel, so a caller can stop waiting
// without cancelling the read: the request stays queued, the next line typed
// completes it, and that line is dropped with the abandoned channel instead of
// reaching a later prompt.
type Lines struct {
	reader *bufio.Reader

	mu    sync.Mutex
	queue []chan readResult
	wake  chan struct{}
	start sync.Once
}

// NewLines wraps r. Nothing is read until the first request.
func NewLines(r io.Reader) *Lines {
	return &Lines{
		reader: bufio.NewReader(r),
		wake:   make(chan struct{}, 1),
	}
}

// request queues a read and returns the channel its line will arrive on. The
// channel is buffered, so ignoring it never blocks the reader.
func (l *Lines) request() <-chan readResult {
	l.start.Do(func() { go l.pump() })

	reply := make(chan readResult, 1)
	l.mu.Lock()
	l.queue = append(l.queue, reply)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return reply
}

// ReadLine blocks until a line is available, the input ends or ctx is done.
// The trailing newline is not included.
func (l *Lines) ReadLine(ctx context.Context) (string, error) {
	select {
	case res := <-l.request():
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// pump serves requests until the input fails. Lines have no length limit, so
// a pasted wall of text arrives as one line for the caller to reject. A final
// line without a newline is delivered before io.EOF.
func (l *Lines) pump() {
	for {
		reply := l.next()
		line, err := l.reader.ReadString('\n')
		if err == nil || (err == io.EOF && line != "") {
			reply <- readResult{line: strings.TrimRight(line, "\r\n")}
			continue
		}
		reply <- readResult{err: err}
		for {
			// The input is finished; every later request gets the same error.
			l.next() <- readResult{err: err}
		}
	}
}

func (l *Lines) next() chan readResult {
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			reply := l.queue[0]
			l.queue = l.queue[1:]
			l.mu.Unlock()
			return reply
		}
		l.mu.Unlock()
		<-l.wake
	}
}
