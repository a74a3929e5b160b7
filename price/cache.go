package price

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/ledger/date"
	"github.com/rs/zerolog"
)

// diskCache implements a simple disk cache for HTTP responses, keyed by
// day, so that cached prices expire every day.
type diskCache struct {
	base  http.RoundTripper
	dir   string
	today func() time.Time
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	log := zerolog.Ctx(req.Context())
	key := fmt.Sprintf("%s %s %s", date.String(c.today()), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		log.Debug().Str("url", req.URL.Redacted()).Msg("cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write error ignored")
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response to disk. DumpResponse leaves resp.Body readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0644)
}

// Daily returns a client caching successful responses in dir for the day.
// An empty dir means a "ldg" directory in the system temp dir.
func Daily(dir string) *http.Client {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "ldg")
	}
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir, today: time.Now}}
}
