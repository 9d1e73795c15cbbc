package config

import (
	"net"
	"strconv"
	"time"

	"github.com/contiv/staticd/errors"
)

const (
	// DefaultListen is the address used when no listen address is supplied.
	DefaultListen = ":80"
	// DefaultRoot serves the working directory of the process.
	DefaultRoot = "."
	// DefaultDocument is appended to request targets that name a directory.
	DefaultDocument = "index.html"
)

// Global is the global configuration of the daemon.
type Global struct {
	Listen          string        `json:"listen"`
	Root            string        `json:"root"`
	DefaultDocument string        `json:"index"`
	Debug           bool          `json:"debug"`
	BinaryCharset   bool          `json:"binary-charset"`
	SilentErrors    bool          `json:"silent-errors"`
	Timeout         time.Duration `json:"timeout"`
}

// NewGlobalConfig returns a global configuration populated with the defaults.
func NewGlobalConfig() *Global {
	return &Global{
		Listen:          DefaultListen,
		Root:            DefaultRoot,
		DefaultDocument: DefaultDocument,
		BinaryCharset:   true,
	}
}

// Validate checks the configuration against GlobalSchema and then verifies
// that the listen address carries a numeric port. Port 0 picks a free port.
func (g *Global) Validate() error {
	if err := g.ValidateJSON(); err != nil {
		return errors.InvalidConfig.Combine(err)
	}

	_, port, err := net.SplitHostPort(g.Listen)
	if err != nil {
		return errors.InvalidConfig.Combine(err)
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return errors.InvalidConfig.Combine(err)
	}

	return nil
}
