package config

import (
	"time"

	"github.com/contiv/staticd/errors"
	. "gopkg.in/check.v1"
)

func (s *configSuite) TestGlobalDefaults(c *C) {
	global := NewGlobalConfig()
	c.Assert(global, DeepEquals, &Global{
		Listen:          ":80",
		Root:            ".",
		DefaultDocument: "index.html",
		BinaryCharset:   true,
	})
	c.Assert(global.Validate(), IsNil)
}

func (s *configSuite) TestGlobalValid(c *C) {
	for _, listen := range []string{":8080", "127.0.0.1:80", "[::1]:9005", "localhost:65535", "127.0.0.1:0"} {
		global := NewGlobalConfig()
		global.Listen = listen
		global.Timeout = 30 * time.Second
		c.Assert(global.Validate(), IsNil, Commentf("listen %q", listen))
	}
}

func (s *configSuite) TestGlobalInvalid(c *C) {
	cases := map[string]func(*Global){
		"empty root":          func(g *Global) { g.Root = "" },
		"empty index":         func(g *Global) { g.DefaultDocument = "" },
		"index with slash":    func(g *Global) { g.DefaultDocument = "sub/index.html" },
		"index backslash":     func(g *Global) { g.DefaultDocument = `sub\index.html` },
		"index parent":        func(g *Global) { g.DefaultDocument = ".." },
		"empty listen":        func(g *Global) { g.Listen = "" },
		"listen without port": func(g *Global) { g.Listen = "localhost" },
		"listen bad port":     func(g *Global) { g.Listen = ":http80" },
		"listen port range":   func(g *Global) { g.Listen = ":70000" },
		"negative timeout":    func(g *Global) { g.Timeout = -time.Second },
	}

	for name, mutate := range cases {
		global := NewGlobalConfig()
		mutate(global)
		err := global.Validate()
		c.Assert(err, NotNil, Commentf(name))
		c.Assert(errors.Is(err, errors.InvalidConfig), Equals, true, Commentf(name))
	}
}
