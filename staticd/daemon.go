package staticd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/contiv/staticd/api"
	"github.com/contiv/staticd/config"
	"github.com/contiv/staticd/contenttype"
	"github.com/contiv/staticd/errors"
	"github.com/contiv/staticd/info"
	"github.com/contiv/staticd/storage"
	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gorilla/mux"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// DaemonConfig is the configuration struct used by the daemon to hold globals.
type DaemonConfig struct {
	Global *config.Global
	Stats  *info.Stats
	// Out receives the startup banner. A nil Out prints nothing.
	Out io.Writer

	fs *storage.Filesystem
}

// NewDaemonConfig returns a DaemonConfig for global that prints its banner
// to stdout.
func NewDaemonConfig(global *config.Global) *DaemonConfig {
	return &DaemonConfig{
		Global: global,
		Stats:  &info.Stats{},
		Out:    os.Stdout,
	}
}

// Open validates the configuration and opens the served directory.
func (d *DaemonConfig) Open() error {
	if err := d.Global.Validate(); err != nil {
		return err
	}

	if d.Stats == nil {
		d.Stats = &info.Stats{}
	}

	fs, err := storage.Open(d.Global.Root)
	if err != nil {
		return err
	}

	d.fs = fs
	return nil
}

// Close releases the served directory.
func (d *DaemonConfig) Close() error {
	if d.fs == nil {
		return nil
	}

	err := d.fs.Close()
	d.fs = nil
	return err
}

// Daemon opens the served directory, listens on the configured address and
// serves until ctx is cancelled.
func (d *DaemonConfig) Daemon(ctx context.Context) error {
	if d.Global.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := d.Open(); err != nil {
		return err
	}
	defer d.Close()

	info.HandleDebugSignal(ctx, d.Stats)

	ln, err := net.Listen("tcp", d.Global.Listen)
	if err != nil {
		return errors.Listen.Combine(err)
	}

	return d.Serve(ctx, ln)
}

// Serve serves requests arriving on ln until ctx is cancelled, then shuts
// down gracefully. Open must have been called.
func (d *DaemonConfig) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      d.Router(),
		ReadTimeout:  d.Global.Timeout,
		WriteTimeout: d.Global.Timeout,
	}

	log.WithFields(log.Fields{
		"listen":         ln.Addr().String(),
		"root":           d.fs.Path(),
		"index":          d.Global.DefaultDocument,
		"binary_charset": d.Global.BinaryCharset,
		"silent_errors":  d.Global.SilentErrors,
		"content_types":  contenttype.Extensions(),
	}).Info("Starting static file server")

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()

	if d.Out != nil {
		fmt.Fprintln(d.Out, color.GreenString("static file server at %s is running..", ln.Addr()))
	}

	select {
	case err := <-errs:
		return errors.Listen.Combine(err)
	case <-ctx.Done():
	}

	log.Info("Shutting down static file server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Shutdown.Combine(err)
	}

	return nil
}

// Router returns the handler for every request. Paths are not cleaned or
// redirected; every method and target reaches handleFile.
func (d *DaemonConfig) Router() *mux.Router {
	handler := api.LogHandler("file", d.Global.Debug, d.recoverHandler(d.handleFile))

	r := mux.NewRouter()
	r.SkipClean(true)
	r.PathPrefix("/").HandlerFunc(handler)
	r.NotFoundHandler = handler

	return r
}

func (d *DaemonConfig) handleFile(w http.ResponseWriter, r *http.Request) {
	name := api.ResolvePath(r.URL.Path, d.Global.DefaultDocument)
	logger := api.Logger(r).WithField("path", name)

	if _, err := d.fs.Stat(name); err != nil {
		switch {
		case errors.Is(err, errors.NotExists):
			logger.Info(errors.NotExists.Error())
		case errors.Is(err, errors.PathEscape):
			logger.Warn("Refusing path outside of the served directory")
		}

		d.fail(w, r, err)
		return
	}

	content, err := d.fs.ReadFile(name)
	if err != nil {
		d.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contenttype.ForPath(name).Header(d.Global.BinaryCharset))
	w.WriteHeader(http.StatusOK)

	n, err := w.Write(content)
	d.Stats.Record(http.StatusOK, n)
	if err != nil {
		logger.Warn(errors.WriteResponse.Combine(err))
		return
	}

	logger.WithField("size", units.HumanSize(float64(n))).Info("The file exists.")
}

// fail answers a failed request. In silent mode no status line is written:
// the response is aborted and the transport closes the connection.
func (d *DaemonConfig) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := api.HTTPStatus(err)
	d.Stats.Record(status, 0)

	if d.Global.SilentErrors {
		api.Logger(r).WithField("status", status).Errorf("Aborting response: %v", err)
		panic(http.ErrAbortHandler)
	}

	api.HTTPError(w, r, err)
}

// recoverHandler keeps a panicking request from taking the process down.
func (d *DaemonConfig) recoverHandler(actionFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			d.fail(w, r, errors.HandlerPanic.Combine(fmt.Errorf("%v", rec)))
		}()

		actionFunc(w, r)
	}
}
