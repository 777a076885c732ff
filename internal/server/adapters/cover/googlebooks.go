// Package cover wraps the book-metadata cover lookup. The adapter never
// fails past its boundary: any upstream problem degrades to a deterministic
// placeholder URL encoding the title.
package cover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/boksu/booksum/internal/logging"
)

const defaultEndpoint = "https://www.googleapis.com/books/v1/volumes"

const placeholderBase = "https://via.placeholder.com/300x450/f3f4f6/374151?text="

// Adapter queries a Google-Books-style volumes search by title.
type Adapter struct {
	endpoint string
	client   *http.Client
	logger   logging.Logger
}

func New(logger logging.Logger) *Adapter {
	return &Adapter{
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With("module", "cover"),
	}
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			ImageLinks *struct {
				Large     string `json:"large"`
				Medium    string `json:"medium"`
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup returns a cover image URL for the given title, preferring larger
// image variants. Missing results degrade to a placeholder naming the
// title; hard failures degrade to a generic placeholder.
func (a *Adapter) Lookup(ctx context.Context, title string) string {
	coverURL, err := a.search(ctx, title)
	if err != nil {
		a.logger.Error(ctx, "cover lookup failed, using placeholder", "title", title, "error", err.Error())
		return placeholderBase + "Book+Cover"
	}

	if coverURL == "" {
		return Placeholder(title)
	}

	a.logger.Info(ctx, "cover found", "title", title, "url", coverURL)
	return coverURL
}

func (a *Adapter) search(ctx context.Context, title string) (string, error) {
	u := fmt.Sprintf("%s?q=%s&maxResults=1", a.endpoint, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Items) == 0 {
		return "", nil
	}

	links := parsed.Items[0].VolumeInfo.ImageLinks
	if links == nil {
		return "", nil
	}

	// Prefer larger images.
	switch {
	case links.Large != "":
		return links.Large, nil
	case links.Medium != "":
		return links.Medium, nil
	case links.Thumbnail != "":
		return links.Thumbnail, nil
	}
	return "", nil
}

// Placeholder is the deterministic cover URL for titles without a cover.
func Placeholder(title string) string {
	return placeholderBase + strings.ReplaceAll(title, " ", "+")
}
