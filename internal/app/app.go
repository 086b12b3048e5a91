package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/davebern/tidepool/internal/config"
	"github.com/davebern/tidepool/internal/relay"
	"github.com/davebern/tidepool/internal/ui"
)

// Options configure a tidepool invocation. Non-empty fields override the
// values loaded from the config file and environment.
type Options struct {
	ConfigPath string
	APIURL     string
	APIKey     string
	OutputDir  string
	PickIndex  int // 1-based picker selection; zero means interactive
}

// Run performs one end-to-end save: submit req, interpret the response
// variant, download whatever it points at, and write the result into the
// output directory. It returns the paths of all files written.
func Run(ctx context.Context, opts Options, req relay.Request) ([]string, error) {
	client, cfg, err := setup(opts)
	if err != nil {
		return nil, err
	}
	saver := &Saver{
		Client:    client,
		OutputDir: cfg.OutputDir,
		Pick:      pickFunc(opts.PickIndex),
	}
	return saver.Save(ctx, applyDefaults(req, cfg.Defaults))
}

// Info retrieves metadata about the configured relay instance.
func Info(ctx context.Context, opts Options) (*relay.InstanceInfo, error) {
	client, _, err := setup(opts)
	if err != nil {
		return nil, err
	}
	return client.FetchInstanceInfo(ctx)
}

func setup(opts Options) (*relay.Client, config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.APIKey != "" {
		cfg.APIKey = opts.APIKey
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, config.Config{}, fmt.Errorf("no api url configured; set api_url in the config file, TIDEPOOL_API_URL, or --api-url")
	}

	var clientOpts []relay.Option
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, relay.WithAPIKey(cfg.APIKey))
	}
	client, err := relay.New(cfg.APIURL, clientOpts...)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("init relay client: %w", err)
	}
	return client, cfg, nil
}

// applyDefaults fills request options the caller left empty from the config
// file's [defaults] section.
func applyDefaults(req relay.Request, d config.Defaults) relay.Request {
	if req.AudioFormat == "" {
		req.AudioFormat = relay.AudioFormat(d.AudioFormat)
	}
	if req.DownloadMode == "" {
		req.DownloadMode = relay.DownloadMode(d.DownloadMode)
	}
	if req.FilenameStyle == "" {
		req.FilenameStyle = relay.FilenameStyle(d.FilenameStyle)
	}
	if req.VideoQuality == "" {
		req.VideoQuality = d.VideoQuality
	}
	return req
}

// pickFunc resolves picker selections either from a fixed 1-based index or
// interactively through the TUI.
func pickFunc(index int) func(items []relay.PickerItem) (int, error) {
	if index > 0 {
		return func(items []relay.PickerItem) (int, error) {
			if index > len(items) {
				return -1, fmt.Errorf("pick index %d out of range, response has %d items", index, len(items))
			}
			return index - 1, nil
		}
	}
	return ui.RunPicker
}
