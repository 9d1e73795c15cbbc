package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/contiv/staticd/errors"
	"github.com/google/uuid"

	log "github.com/sirupsen/logrus"
)

type contextKey int

const requestIDKey contextKey = iota

// ResolvePath turns a request target into a path relative to the served
// directory. The leading separator is dropped; an empty result, or one ending
// in a separator, gets defaultDocument appended. Parent-directory segments
// are left in place; containment is enforced by storage.
func ResolvePath(target, defaultDocument string) string {
	name := strings.TrimPrefix(target, "/")
	if name == "" || strings.HasSuffix(name, "/") {
		name += defaultDocument
	}

	return name
}

// HTTPStatus maps an error to the status code returned to the client.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errors.NotExists):
		return http.StatusNotFound
	case errors.Is(err, errors.Forbidden), errors.Is(err, errors.PathEscape):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// HTTPError logs err against the request and answers with the mapped status.
// Server errors are logged at error level, client errors at debug level. The
// error detail stays in the log; the client only sees the status text.
func HTTPError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.Unknown
	}

	status := HTTPStatus(err)
	entry := Logger(r).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Errorf("Returning HTTP error: %v", err)
	} else {
		entry.Debugf("Returning HTTP error: %v", err)
	}

	http.Error(w, http.StatusText(status), status)
}

// RequestID returns the ID LogHandler attached to ctx, or an empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logger returns a log entry carrying the request ID of r.
func Logger(r *http.Request) *log.Entry {
	if id := RequestID(r.Context()); id != "" {
		return log.WithField("request", id)
	}

	return log.NewEntry(log.StandardLogger())
}

// LogHandler attaches a request ID to every request. If debugging is active
// the dispatch is logged as well. In either event it will dispatch.
func LogHandler(name string, debug bool, actionFunc http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

		if debug {
			log.WithFields(log.Fields{
				"request": id,
				"method":  r.Method,
				"target":  r.URL.Path,
				"remote":  r.RemoteAddr,
			}).Debugf("Dispatching %s", name)
		}

		actionFunc(w, r)
	}
}
