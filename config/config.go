package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr        string
	DBPath      string
	UploadsDir  string
	UploadsURL  string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.DBPath, "db-path", "formforge.sqlite", "path to SQLite3 DB file (default formforge.sqlite)")
	flag.StringVar(&cfg.UploadsDir, "uploads-dir", "uploads", "directory for submitted file uploads (default uploads)")
	flag.StringVar(&cfg.UploadsURL, "uploads-url", "/uploads", "public base URL of the uploads directory (default /uploads)")
	flag.StringVar(&cfg.TokenSecret, "token-secret", "", "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 120, "token TTL in seconds (default 120)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() string {
	url := cfg.Addr
	url = strings.Replace(url, "0.0.0.0", "localhost", 1)
	return "http://" + url
}
