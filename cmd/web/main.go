package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	configFile := pflag.StringP("config", "c", "", "path to a config file (json, yaml or toml)")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, newHandler(cfg.Web.DisplayHost, cfg.SSH.Port)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with the ssh command filled in.
func newHandler(sshHost, sshPort string) http.Handler {
	page := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHPort}}", sshPort).Replace(htmlPage)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	return mux
}
