package gar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DownloadFileInfo describes one published GAR dump version.
type DownloadFileInfo struct {
	VersionID      int    `json:"VersionId"`
	TextVersion    string `json:"TextVersion"`
	Date           string `json:"Date"`
	GarXMLFullURL  string `json:"GarXMLFullURL"`
	GarXMLDeltaURL string `json:"GarXMLDeltaURL"`
}

// PublishedAt parses the version's publication date.
func (f DownloadFileInfo) PublishedAt() (time.Time, error) {
	return time.Parse("02.01.2006", f.Date)
}

// Client talks to the public GAR version-discovery service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetAllDownloadFileInfo returns the dump versions published on or
// after the cutoff date, newest first as the service reports them.
func (c *Client) GetAllDownloadFileInfo(ctx context.Context, since time.Time) ([]DownloadFileInfo, error) {
	url := c.baseURL + "/GetAllDownloadFileInfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("version discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("version discovery: unexpected status %s", resp.Status)
	}

	var all []DownloadFileInfo
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("version discovery: %w", err)
	}

	var out []DownloadFileInfo
	for _, f := range all {
		at, err := f.PublishedAt()
		if err != nil {
			// Entries with unparseable dates are skipped, not fatal.
			continue
		}
		if !at.Before(since) {
			out = append(out, f)
		}
	}
	return out, nil
}
