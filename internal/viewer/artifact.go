package viewer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"staging-console-backend/internal/models"
)

const maxDownloadBytes = 50 << 20

// DefaultStage picks the artifact shown first. Dual-stage submissions show
// the remove result only while it is the sole delivery.
func DefaultStage(sub *models.Submission) models.Stage {
	if !sub.Plan.IsDualStage() {
		return models.StageSingle
	}
	if sub.ResultRemoveURL != "" && sub.ResultAddURL == "" {
		return models.StageRemove
	}
	return models.StageAdd
}

// AfterURL is the URL of the selected "after" artifact, or "" if it has not
// been delivered.
func AfterURL(sub *models.Submission, stage models.Stage) string {
	switch stage {
	case models.StageRemove:
		return sub.ResultRemoveURL
	case models.StageAdd:
		if sub.ResultAddURL != "" {
			return sub.ResultAddURL
		}
		return sub.ResultDataURL
	default:
		return sub.ResultDataURL
	}
}

// DownloadName is the file name offered for a downloaded artifact.
func DownloadName(sub *models.Submission, stage models.Stage, rawURL string) string {
	ext := ".jpg"
	if u, err := url.Parse(rawURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" && len(e) <= 5 {
			ext = e
		}
	}
	return fmt.Sprintf("%s_%s%s", sub.ID, stage, ext)
}

type Downloader struct {
	httpClient *http.Client
}

func NewDownloader(httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{httpClient: httpClient}
}

// Fetch downloads an artifact. Callers fall back to the URL itself when it
// fails.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch artifact: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return nil, "", fmt.Errorf("artifact exceeds %d bytes", maxDownloadBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
