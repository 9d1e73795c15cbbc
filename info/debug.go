package info

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/docker/go-units"
	"golang.org/x/sys/unix"

	log "github.com/sirupsen/logrus"
)

// Stats counts request outcomes across the whole process. The zero value is
// ready to use and safe for concurrent use.
type Stats struct {
	Served    atomic.Uint64
	Missing   atomic.Uint64
	Forbidden atomic.Uint64
	Failed    atomic.Uint64
	Bytes     atomic.Uint64
}

// Record counts a finished request by its status; n is the body size
// written for a successful one.
func (s *Stats) Record(status, n int) {
	switch status {
	case http.StatusOK:
		s.Served.Add(1)
		s.Bytes.Add(uint64(n))
	case http.StatusNotFound:
		s.Missing.Add(1)
	case http.StatusForbidden:
		s.Forbidden.Add(1)
	default:
		s.Failed.Add(1)
	}
}

// Fields returns the counters as log fields.
func (s *Stats) Fields() log.Fields {
	return log.Fields{
		"served":       s.Served.Load(),
		"missing":      s.Missing.Load(),
		"forbidden":    s.Forbidden.Load(),
		"failed":       s.Failed.Load(),
		"bytes_served": units.HumanSize(float64(s.Bytes.Load())),
	}
}

func numFileDescriptors() int {
	fds, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		return -1
	}
	return len(fds)
}

func fileDescriptorLimit() int64 {
	var rlimit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		return -1
	}
	return int64(rlimit.Cur)
}

func logDebugInfo(stats *Stats) {
	fields := log.Fields{
		"file_descriptors":      numFileDescriptors(),
		"file_descriptor_limit": fileDescriptorLimit(),
		"goroutines":            runtime.NumGoroutine(),
		"architecture":          runtime.GOARCH,
		"os":                    runtime.GOOS,
		"cpus":                  runtime.NumCPU(),
		"go_version":            runtime.Version(),
	}

	for k, v := range stats.Fields() {
		fields[k] = v
	}

	log.WithFields(fields).Info("received SIGUSR1; providing debug info")
}

// HandleDebugSignal watches for SIGUSR1 and logs the debug information
// using logrus until ctx is done. The signal is registered before it returns.
func HandleDebugSignal(ctx context.Context, stats *Stats) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1)

	go func() {
		defer signal.Stop(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				logDebugInfo(stats)
			}
		}
	}()
}
