package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/lshigami/Nihongo/config"
)

const (
	answerFileTimeout = 15 * time.Second
	// Gemini accepts at most 20 MB of inline data per request.
	maxInlineFileBytes = 20 << 20
	maxFileRedirects   = 3
)

var errAnswerFileTooLarge = errors.New("answer file exceeds the size limit")

var supportedImageTypes = map[string]bool{
	"image/png": true, "image/jpeg": true, "image/webp": true,
	"image/gif": true, "image/heic": true, "image/heif": true,
}

// answerFileFetcher downloads uploaded answer images from the configured
// storage hosts only. Every hop, redirects included, must be https on an
// allowed host, and the body is capped at maxBytes.
type answerFileFetcher struct {
	client       *http.Client
	allowedHosts map[string]bool
	maxBytes     int64
}

func newAnswerFileFetcher(cfg config.Storage, client *http.Client) *answerFileFetcher {
	f := &answerFileFetcher{
		allowedHosts: make(map[string]bool, len(cfg.AllowedHosts)),
		maxBytes:     cfg.MaxFileBytes,
	}
	if f.maxBytes <= 0 || f.maxBytes > maxInlineFileBytes {
		f.maxBytes = maxInlineFileBytes
	}
	for _, h := range cfg.AllowedHosts {
		f.allowedHosts[strings.ToLower(h)] = true
	}

	if client == nil {
		client = &http.Client{Timeout: answerFileTimeout}
	}
	c := *client
	if c.Timeout == 0 {
		c.Timeout = answerFileTimeout
	}
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) > maxFileRedirects {
			return fmt.Errorf("stopped after %d redirects", maxFileRedirects)
		}
		return f.checkURL(req.URL)
	}
	f.client = &c
	return f
}

func (f *answerFileFetcher) checkURL(u *url.URL) error {
	if u.Scheme != "https" {
		return fmt.Errorf("answer file URL must use https, got %q", u.Scheme)
	}
	if !f.allowedHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("answer file host %q is not an allowed storage host", u.Hostname())
	}
	return nil
}

// Fetch returns the file bytes and its image MIME type.
func (f *answerFileFetcher) Fetch(ctx context.Context, fileURL string) ([]byte, string, error) {
	if fileURL == "" {
		return nil, "", fmt.Errorf("file URL is empty")
	}
	u, err := url.Parse(fileURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid file URL %s: %w", fileURL, err)
	}
	if err := f.checkURL(u); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid file URL %s: %w", fileURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch file from URL %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch file (status %d) from URL %s", resp.StatusCode, fileURL)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, "", fmt.Errorf("%w: %d bytes declared", errAnswerFileTooLarge, resp.ContentLength)
	}

	var mimeType string
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if parsed, _, err := mime.ParseMediaType(ct); err == nil {
			mimeType = parsed
		}
	}
	if !supportedImageTypes[mimeType] {
		mimeType = mime.TypeByExtension(filepath.Ext(u.Path))
	}
	if !supportedImageTypes[mimeType] {
		return nil, "", fmt.Errorf("unsupported file type %q for %s", mimeType, fileURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file data from URL %s: %w", fileURL, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, "", errAnswerFileTooLarge
	}
	return data, mimeType, nil
}
