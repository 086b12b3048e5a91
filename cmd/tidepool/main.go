package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davebern/tidepool/internal/app"
	"github.com/davebern/tidepool/internal/relay"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tidepool: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "tidepool",
		Short: "Save media through a relay instance",
		Long: `tidepool submits source URLs to a media relay instance and saves whatever
comes back: a direct download, a set of intermediate streams, or one item
picked from a slideshow.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Override config file path")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "Relay instance base URL")
	cmd.PersistentFlags().StringVar(&opts.APIKey, "api-key", "", "API key for the instance")
	cmd.AddCommand(
		newSaveCmd(&opts),
		newInfoCmd(&opts),
	)
	return cmd
}

func newSaveCmd(opts *app.Options) *cobra.Command {
	var req relay.Request
	var audioFormat, downloadMode, filenameStyle, localProcessing, codec, container string

	cmd := &cobra.Command{
		Use:   "save <url>",
		Short: "Process a source URL and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.URL = args[0]
			req.AudioFormat = relay.AudioFormat(audioFormat)
			req.DownloadMode = relay.DownloadMode(downloadMode)
			req.FilenameStyle = relay.FilenameStyle(filenameStyle)
			req.LocalProcessing = relay.LocalProcessingMode(localProcessing)
			req.YoutubeVideoCodec = relay.VideoCodec(codec)
			req.YoutubeVideoContainer = relay.VideoContainer(container)

			paths, err := app.Run(cmd.Context(), *opts, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(paths, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Directory to save into")
	cmd.Flags().IntVar(&opts.PickIndex, "pick", 0, "Picker item to save (1-based, skips the interactive picker)")

	cmd.Flags().StringVar(&req.AudioBitrate, "audio-bitrate", "", "Audio bitrate in kbps (320, 256, 128, 96, 64, 8)")
	cmd.Flags().StringVar(&audioFormat, "audio-format", "", "Audio format (best, mp3, ogg, wav, opus)")
	cmd.Flags().StringVar(&downloadMode, "mode", "", "Download mode (auto, audio, mute)")
	cmd.Flags().StringVar(&filenameStyle, "filename-style", "", "Filename style (classic, pretty, basic, nerdy)")
	cmd.Flags().StringVar(&req.VideoQuality, "quality", "", "Video quality (max, 4320 .. 144)")
	cmd.Flags().StringVar(&localProcessing, "local-processing", "", "Local processing mode (disabled, preferred, forced)")
	cmd.Flags().StringVar(&req.SubtitleLang, "subtitle-lang", "", "Subtitle language code")
	cmd.Flags().BoolVar(&req.DisableMetadata, "disable-metadata", false, "Skip embedding file metadata")
	cmd.Flags().BoolVar(&req.AlwaysProxy, "always-proxy", false, "Tunnel every file through the instance")
	cmd.Flags().BoolVar(&req.ConvertGif, "convert-gif", false, "Convert looping videos to GIF")
	cmd.Flags().BoolVar(&req.AllowH265, "allow-h265", false, "Allow H.265 video")
	cmd.Flags().BoolVar(&req.TikTokFullAudio, "tiktok-full-audio", false, "Fetch the original TikTok audio track")
	cmd.Flags().StringVar(&codec, "youtube-codec", "", "YouTube video codec (h264, av1, vp9)")
	cmd.Flags().StringVar(&container, "youtube-container", "", "YouTube output container (auto, mp4, webm, mkv)")
	cmd.Flags().StringVar(&req.YoutubeDubLang, "youtube-dub-lang", "", "YouTube dubbed audio language code")
	cmd.Flags().BoolVar(&req.YoutubeBetterAudio, "youtube-better-audio", false, "Prefer higher quality YouTube audio")
	cmd.Flags().BoolVar(&req.YoutubeHLS, "youtube-hls", false, "Use HLS formats for YouTube")

	return cmd
}

func newInfoCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show relay instance version and supported services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := app.Info(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:  %s\n", info.Instance.Version)
			fmt.Fprintf(out, "url:      %s\n", info.Instance.URL)
			fmt.Fprintf(out, "start:    %s\n", info.Instance.StartTime)
			fmt.Fprintf(out, "commit:   %s (%s, %s)\n", info.Git.Commit, info.Git.Branch, info.Git.Remote)
			fmt.Fprintf(out, "services: %s\n", strings.Join(info.Instance.Services, ", "))
			return nil
		},
	}
}
