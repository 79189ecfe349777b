package view

import (
	"fmt"
	"io"
	"sync"
)

// ConsoleNotifier writes notifications as "<title>: <message>" lines. Notify returns only after
// the line has been written.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Notify(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s: %s\n", title, message)
}
