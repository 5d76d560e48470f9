package cli

import (
	"github.com/julianstephens/habitkit/internal/api"
	"github.com/julianstephens/habitkit/internal/constants"
)

type ServeCmd struct {
	Addr       string `help:"Address to listen on." default:":8080"`
	CORSOrigin string `help:"Allowed CORS origin for the web frontend." name:"cors-origin" default:"http://localhost:5173"`
	Debug      bool   `help:"Enable verbose request logging."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if c.Addr == "" {
		c.Addr = constants.DefaultListenAddr
	}

	server := api.NewServer(ctx.Service, api.Config{
		Addr:       c.Addr,
		CORSOrigin: c.CORSOrigin,
		Debug:      c.Debug,
	})
	return server.Run()
}
