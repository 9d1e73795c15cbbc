package info

import (
	"context"
	"net/http"
	"os"
	"syscall"
	. "testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "gopkg.in/check.v1"
)

type infoSuite struct {
	hook *test.Hook
}

var _ = Suite(&infoSuite{})

func TestInfo(t *T) { TestingT(t) }

func (s *infoSuite) SetUpTest(c *C) {
	s.hook = test.NewGlobal()
}

func (s *infoSuite) TearDownTest(c *C) {
	log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
}

func (s *infoSuite) TestRecord(c *C) {
	stats := &Stats{}
	stats.Record(http.StatusOK, 5)
	stats.Record(http.StatusOK, 2048)
	stats.Record(http.StatusNotFound, 0)
	stats.Record(http.StatusForbidden, 0)
	stats.Record(http.StatusInternalServerError, 0)
	stats.Record(http.StatusInternalServerError, 0)

	c.Assert(stats.Served.Load(), Equals, uint64(2))
	c.Assert(stats.Missing.Load(), Equals, uint64(1))
	c.Assert(stats.Forbidden.Load(), Equals, uint64(1))
	c.Assert(stats.Failed.Load(), Equals, uint64(2))
	c.Assert(stats.Bytes.Load(), Equals, uint64(2053))
	c.Assert(stats.Fields()["bytes_served"], Equals, "2.053kB")
}

func (s *infoSuite) TestDebugInfo(c *C) {
	stats := &Stats{}
	stats.Record(http.StatusOK, 10)

	logDebugInfo(stats)
	entry := s.hook.LastEntry()
	c.Assert(entry, NotNil)
	c.Assert(entry.Message, Equals, "received SIGUSR1; providing debug info")
	c.Assert(entry.Data["served"], Equals, uint64(1))
	c.Assert(entry.Data["goroutines"].(int) > 0, Equals, true)
	c.Assert(entry.Data["file_descriptor_limit"].(int64) != 0, Equals, true)
}

func (s *infoSuite) TestHandleDebugSignal(c *C) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	HandleDebugSignal(ctx, &Stats{})
	c.Assert(syscall.Kill(os.Getpid(), syscall.SIGUSR1), IsNil)

	deadline := time.Now().Add(5 * time.Second)
	for len(s.hook.AllEntries()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	c.Assert(s.hook.AllEntries(), HasLen, 1)
}
