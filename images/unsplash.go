package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

// unsplashClient talks to the Unsplash photo search API.
type unsplashClient struct {
	accessKey     string
	searchURL     string
	searchTimeout time.Duration
	fetchTimeout  time.Duration
	client        *http.Client
}

type unsplashResult struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// search issues a free-text query for one landscape-oriented photo and
// returns the URL of the top hit.
func (u *unsplashClient) search(ctx context.Context, query string) (string, error) {
	reqURL := fmt.Sprintf("%s?query=%s&per_page=1&orientation=landscape",
		u.searchURL, url.QueryEscape(query))

	ctx, cancel := context.WithTimeout(ctx, u.searchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unsplash search returned %d: %s", resp.StatusCode, string(body))
	}

	var result unsplashResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Results) == 0 {
		return "", fmt.Errorf("no results for query %q", query)
	}
	photoURL := result.Results[0].URLs.Regular
	if photoURL == "" {
		return "", fmt.Errorf("top result for query %q has no URL", query)
	}
	return photoURL, nil
}

// fetch downloads the image bytes at photoURL.
func (u *unsplashClient) fetch(ctx context.Context, photoURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, u.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", photoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
