package vulnlib

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/kvesta/pomvuln/config"
)

// Lookuper returns the CVE identifiers known for one GAV coordinate
type Lookuper interface {
	Lookup(ctx context.Context, gav string) ([]string, error)
}

// Client queries the remote CVE list service
type Client struct {
	Cli *http.Client

	// Endpoint is the service base address, e.g. http://localhost:8080
	Endpoint string
	Timeout  time.Duration
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = config.DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	tr := &http.Transport{
		IdleConnTimeout:    60 * time.Second,
		DisableCompression: true,
	}

	return &Client{
		Cli: &http.Client{
			Transport: tr,
		},
		Endpoint: strings.TrimRight(endpoint, "/"),
		Timeout:  timeout,
	}
}

// DB is a local SQLite mirror of the CVE list service
type DB struct {
	DB *sql.DB

	Store string
}

type DBRow struct {
	Id    int
	GAV   string
	CVEID string
}
