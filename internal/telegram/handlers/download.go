package handlers

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/futig/career-agent/internal/entity"
)

const downloadTimeout = 30 * time.Second

// FileLinker resolves a Telegram file ID to its download URL.
type FileLinker interface {
	GetFileDirectURL(fileID string) (string, error)
}

// TelegramFileDownloader fetches files users upload to the bot.
type TelegramFileDownloader struct {
	api      FileLinker
	client   *http.Client
	maxBytes int64
}

func NewFileDownloader(api FileLinker, maxBytes int64) *TelegramFileDownloader {
	return &TelegramFileDownloader{
		api: api,
		client: &http.Client{
			Timeout: downloadTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		maxBytes: maxBytes,
	}
}

// Download returns the file's content, refusing files over the size limit.
func (d *TelegramFileDownloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := d.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file info: %w", err)
	}

	parsedURL, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("invalid file URL: %w", err)
	}
	if parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL scheme: %s (expected https)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		// The URL embeds the bot token; report the error without it.
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file data: %w", err)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", entity.ErrDocumentTooLarge, d.maxBytes)
	}

	return data, nil
}
