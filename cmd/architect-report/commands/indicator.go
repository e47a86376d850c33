package commands

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"architect-report/internal/leanix"
	"architect-report/internal/logging"

	"github.com/rs/zerolog/log"
)

var spinnerFrames = []rune{'|', '/', '-', '\\'}

// spinner animates a progress marker on a terminal while a query runs.
type spinner struct {
	out  io.Writer
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// newIndicator returns a spinner on interactive stderr and a log-only indicator otherwise.
func newIndicator() leanix.Indicator {
	if logging.IsTerminal(os.Stderr) {
		return &spinner{out: os.Stderr}
	}
	return logIndicator{}
}

func (s *spinner) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.spin(s.stop, s.done)
}

func (s *spinner) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; ; i++ {
		fmt.Fprintf(s.out, "\r%c querying inventory", spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

func (s *spinner) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}

type logIndicator struct{}

func (logIndicator) Show() { log.Info().Msg("Querying inventory") }
func (logIndicator) Hide() { log.Debug().Msg("Inventory query finished") }
