package app

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/davebern/tidepool/internal/relay"
)

// Saver turns one processing response into files on disk.
type Saver struct {
	Client    relay.Processor
	OutputDir string
	Pick      func(items []relay.PickerItem) (int, error)
}

const fallbackName = "media.bin"

// Save submits req and writes the resulting media into OutputDir. The
// response variant decides what gets written:
//
//   - tunnel/redirect: the downloaded payload under the carried filename
//   - local-processing: every intermediate stream as a numbered file; the
//     streams are left for the user to combine, tidepool does no muxing
//   - picker: the item chosen via Pick, plus the shared background audio
//     track when the response carries one
func (s *Saver) Save(ctx context.Context, req relay.Request) ([]string, error) {
	resp, payload, err := s.Client.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case relay.StatusTunnel, relay.StatusRedirect:
		return s.saveTunnel(resp, payload)
	case relay.StatusLocalProcessing:
		return s.saveStreams(ctx, resp.LocalProcessing)
	case relay.StatusPicker:
		return s.savePicked(ctx, resp.Picker)
	}
	return nil, fmt.Errorf("unhandled response status %q", resp.Status)
}

func (s *Saver) saveTunnel(resp *relay.Response, payload []byte) ([]string, error) {
	name := resp.Filename()
	if name == "" {
		name = nameFromURL(resp.Tunnel.URL)
	}
	written, err := s.write(name, payload)
	if err != nil {
		return nil, err
	}
	return []string{written}, nil
}

func (s *Saver) saveStreams(ctx context.Context, lp *relay.LocalProcessingInfo) ([]string, error) {
	if lp == nil || len(lp.Tunnel) == 0 {
		return nil, fmt.Errorf("local-processing response carries no streams")
	}
	base := fallbackName
	if lp.Output != nil && lp.Output.Filename != "" {
		base = lp.Output.Filename
	}
	paths := make([]string, 0, len(lp.Tunnel))
	for i, streamURL := range lp.Tunnel {
		data, err := s.Client.Download(ctx, streamURL)
		if err != nil {
			return nil, fmt.Errorf("stream %d of %d: %w", i+1, len(lp.Tunnel), err)
		}
		written, err := s.write(segmentName(base, i+1), data)
		if err != nil {
			return nil, err
		}
		paths = append(paths, written)
	}
	return paths, nil
}

func (s *Saver) savePicked(ctx context.Context, picker *relay.PickerInfo) ([]string, error) {
	if picker == nil || len(picker.Items) == 0 {
		return nil, fmt.Errorf("picker response carries no items")
	}
	index, err := s.Pick(picker.Items)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, fmt.Errorf("selection cancelled")
	}

	item := picker.Items[index]
	data, err := s.Client.Download(ctx, item.URL)
	if err != nil {
		return nil, err
	}
	written, err := s.write(nameFromURL(item.URL), data)
	if err != nil {
		return nil, err
	}
	paths := []string{written}

	if picker.Audio != "" {
		audio, err := s.Client.Download(ctx, picker.Audio)
		if err != nil {
			return nil, fmt.Errorf("background audio: %w", err)
		}
		name := picker.AudioFilename
		if name == "" {
			name = nameFromURL(picker.Audio)
		}
		audioPath, err := s.write(name, audio)
		if err != nil {
			return nil, err
		}
		paths = append(paths, audioPath)
	}
	return paths, nil
}

func (s *Saver) write(name string, data []byte) (string, error) {
	// Server-assigned names are untrusted; keep only the final path element.
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = fallbackName
	}
	dir := s.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return full, nil
}

// nameFromURL derives a filename from the last path element of a media URL.
func nameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackName
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return fallbackName
	}
	return base
}

// segmentName numbers intermediate streams before the extension:
// merged-video.mp4 -> merged-video.1.mp4.
func segmentName(base string, n int) string {
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s.%d%s", stem, n, ext)
}
