// Package cookies exports browser cookies to the Netscape cookie file format
// that yt-dlp reads with --cookies.
package cookies

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/chrome"
	_ "github.com/browserutils/kooky/browser/chromium"
	_ "github.com/browserutils/kooky/browser/edge"
	_ "github.com/browserutils/kooky/browser/firefox"
	_ "github.com/browserutils/kooky/browser/opera"
)

// NetscapeHeader is the first line of every cookie file
const NetscapeHeader = "# Netscape HTTP Cookie File"

const httpOnlyPrefix = "#HttpOnly_"

// ErrNoCookies is returned when nothing matched the browser and domain
var ErrNoCookies = errors.New("no cookies found")

// Cookie is a browser cookie reduced to what a cookie file stores
type Cookie struct {
	Browser  string
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	Expires  time.Time
	Name     string
	Value    string
}

// Reader loads cookies whose domain ends with domain
type Reader func(ctx context.Context, domain string) ([]Cookie, error)

// SupportedBrowsers returns the browser names accepted by ExportOptions
func SupportedBrowsers() []string {
	return []string{"chrome", "chromium", "firefox", "edge", "opera"}
}

// ReadBrowserCookies reads cookies from every installed browser profile
func ReadBrowserCookies(ctx context.Context, domain string) ([]Cookie, error) {
	var filters []kooky.Filter
	if domain != "" {
		filters = append(filters, kooky.DomainHasSuffix(domain))
	}

	found, err := kooky.ReadCookies(ctx, filters...)
	if err != nil && len(found) == 0 {
		return nil, fmt.Errorf("read cookies from browser: %w", err)
	}

	result := make([]Cookie, 0, len(found))
	for _, c := range found {
		browser := ""
		if c.Browser != nil {
			browser = c.Browser.Browser()
		}
		result = append(result, Cookie{
			Browser:  browser,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
			Expires:  c.Expires,
			Name:     c.Name,
			Value:    c.Value,
		})
	}
	return result, nil
}

// ExportOptions selects what to export and where
type ExportOptions struct {
	Browser    string // empty means any browser
	Domain     string // e.g. "youtube.com"
	OutputPath string
}

// Exporter writes browser cookies to a cookie file
type Exporter struct {
	read Reader
}

// NewExporter creates an exporter that reads real browser profiles
func NewExporter() *Exporter {
	return &Exporter{read: ReadBrowserCookies}
}

// Export writes the matching cookies to opts.OutputPath and returns how many
// were written.
func (e *Exporter) Export(ctx context.Context, opts ExportOptions) (int, error) {
	if opts.OutputPath == "" {
		return 0, errors.New("output path is required")
	}

	all, err := e.read(ctx, opts.Domain)
	if err != nil {
		return 0, err
	}

	browser := strings.ToLower(strings.TrimSpace(opts.Browser))
	selected := make([]Cookie, 0, len(all))
	for _, c := range all {
		if browser != "" && !strings.Contains(strings.ToLower(c.Browser), browser) {
			continue
		}
		selected = append(selected, c)
	}
	if len(selected) == 0 {
		return 0, fmt.Errorf("%w for browser %q and domain %q", ErrNoCookies, opts.Browser, opts.Domain)
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}
	// Cookie files hold session tokens
	file, err := os.OpenFile(opts.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if err := WriteNetscape(file, selected); err != nil {
		return 0, err
	}
	return len(selected), nil
}

// WriteNetscape writes cookies in the Netscape format, one tab separated
// line per cookie.
func WriteNetscape(w io.Writer, cookies []Cookie) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, NetscapeHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, c := range cookies {
		domain := c.Domain
		includeSubdomains := strings.HasPrefix(domain, ".")
		if c.HTTPOnly {
			domain = httpOnlyPrefix + domain
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		var expires int64
		if !c.Expires.IsZero() && c.Expires.Unix() > 0 {
			expires = c.Expires.Unix()
		}

		_, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, boolField(includeSubdomains), path, boolField(c.Secure), expires, c.Name, c.Value)
		if err != nil {
			return fmt.Errorf("write cookie: %w", err)
		}
	}
	return bw.Flush()
}

func boolField(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
