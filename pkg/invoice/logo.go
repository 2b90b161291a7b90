package invoice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchLogo downloads the branding logo once. Callers treat failure as a
// degraded header, never a fatal error: log it and render without the logo.
func FetchLogo(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build logo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch logo: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}

	return data, nil
}

// imageType maps a sniffed content type to the format name fpdf expects.
// An empty result means the image is unusable and the logo is skipped.
func imageType(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	default:
		return ""
	}
}
