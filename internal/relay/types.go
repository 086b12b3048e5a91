package relay

import (
	"encoding/json"
	"fmt"
)

// Status discriminates the response union returned by POST /.
type Status string

const (
	StatusTunnel          Status = "tunnel"
	StatusRedirect        Status = "redirect"
	StatusLocalProcessing Status = "local-processing"
	StatusPicker          Status = "picker"
	StatusError           Status = "error"
)

// AudioFormat selects the audio output format.
type AudioFormat string

const (
	AudioFormatBest AudioFormat = "best"
	AudioFormatMP3  AudioFormat = "mp3"
	AudioFormatOgg  AudioFormat = "ogg"
	AudioFormatWav  AudioFormat = "wav"
	AudioFormatOpus AudioFormat = "opus"
)

// DownloadMode selects what the instance extracts from the source.
type DownloadMode string

const (
	DownloadModeAuto  DownloadMode = "auto"
	DownloadModeAudio DownloadMode = "audio"
	DownloadModeMute  DownloadMode = "mute"
)

// FilenameStyle selects how the instance names output files.
type FilenameStyle string

const (
	FilenameStyleClassic FilenameStyle = "classic"
	FilenameStylePretty  FilenameStyle = "pretty"
	FilenameStyleBasic   FilenameStyle = "basic"
	FilenameStyleNerdy   FilenameStyle = "nerdy"
)

// LocalProcessingMode controls whether the instance prefers handing media
// back for client-side processing instead of remuxing server-side.
type LocalProcessingMode string

const (
	LocalProcessingDisabled  LocalProcessingMode = "disabled"
	LocalProcessingPreferred LocalProcessingMode = "preferred"
	LocalProcessingForced    LocalProcessingMode = "forced"
)

// VideoCodec selects the preferred YouTube video codec.
type VideoCodec string

const (
	VideoCodecH264 VideoCodec = "h264"
	VideoCodecAV1  VideoCodec = "av1"
	VideoCodecVP9  VideoCodec = "vp9"
)

// VideoContainer selects the preferred YouTube output container.
type VideoContainer string

const (
	VideoContainerAuto VideoContainer = "auto"
	VideoContainerMP4  VideoContainer = "mp4"
	VideoContainerWebM VideoContainer = "webm"
	VideoContainerMKV  VideoContainer = "mkv"
)

// Request is the body of a POST / processing call. URL is the only required
// field; everything else is optional and omitted from the wire payload when
// unset. The instance validates field combinations, not this client.
type Request struct {
	URL string `json:"url"`

	AudioBitrate    string              `json:"audioBitrate,omitempty"` // 320, 256, 128, 96, 64 or 8
	AudioFormat     AudioFormat         `json:"audioFormat,omitempty"`
	DownloadMode    DownloadMode        `json:"downloadMode,omitempty"`
	FilenameStyle   FilenameStyle       `json:"filenameStyle,omitempty"`
	VideoQuality    string              `json:"videoQuality,omitempty"` // max, 4320 .. 144
	LocalProcessing LocalProcessingMode `json:"localProcessing,omitempty"`
	SubtitleLang    string              `json:"subtitleLang,omitempty"`

	DisableMetadata bool `json:"disableMetadata,omitempty"`
	AlwaysProxy     bool `json:"alwaysProxy,omitempty"`
	ConvertGif      bool `json:"convertGif,omitempty"`
	AllowH265       bool `json:"allowH265,omitempty"`
	TikTokFullAudio bool `json:"tiktokFullAudio,omitempty"`

	YoutubeVideoCodec     VideoCodec     `json:"youtubeVideoCodec,omitempty"`
	YoutubeVideoContainer VideoContainer `json:"youtubeVideoContainer,omitempty"`
	YoutubeDubLang        string         `json:"youtubeDubLang,omitempty"`
	YoutubeBetterAudio    bool           `json:"youtubeBetterAudio,omitempty"`
	YoutubeHLS            bool           `json:"youtubeHLS,omitempty"`
}

// Response is the tagged union returned by POST /. Exactly one variant
// pointer is non-nil, matching Status. Fields of inactive variants are nil
// and must not be relied upon.
type Response struct {
	Status Status

	Tunnel          *TunnelInfo          // tunnel and redirect
	LocalProcessing *LocalProcessingInfo // local-processing
	Picker          *PickerInfo          // picker
	Error           *ErrorInfo           // error
}

// UnmarshalJSON peeks the status discriminator and decodes the single
// matching variant. Unknown discriminators are rejected so a new server-side
// variant surfaces as a decode error instead of a half-filled struct.
func (r *Response) UnmarshalJSON(data []byte) error {
	var head struct {
		Status Status `json:"status"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	r.Status = head.Status

	switch head.Status {
	case StatusTunnel, StatusRedirect:
		var v TunnelInfo
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		r.Tunnel = &v
	case StatusLocalProcessing:
		var v LocalProcessingInfo
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		r.LocalProcessing = &v
	case StatusPicker:
		var v PickerInfo
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		r.Picker = &v
	case StatusError:
		var v struct {
			Error ErrorInfo `json:"error"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		r.Error = &v.Error
	default:
		return fmt.Errorf("unknown response status %q", head.Status)
	}
	return nil
}

// Filename returns the single logical output filename for the active
// variant, or "" when the variant carries none. Safe on a nil receiver.
func (r *Response) Filename() string {
	if r == nil {
		return ""
	}
	switch r.Status {
	case StatusTunnel, StatusRedirect:
		if r.Tunnel != nil {
			return r.Tunnel.Filename
		}
	case StatusLocalProcessing:
		if r.LocalProcessing != nil && r.LocalProcessing.Output != nil {
			return r.LocalProcessing.Output.Filename
		}
	case StatusPicker:
		if r.Picker != nil {
			return r.Picker.AudioFilename
		}
	}
	return ""
}

// TunnelInfo is carried by the tunnel and redirect variants.
type TunnelInfo struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// ProcessingType names the client-side operation a local-processing
// response expects the caller to perform.
type ProcessingType string

const (
	ProcessingMerge ProcessingType = "merge"
	ProcessingMute  ProcessingType = "mute"
	ProcessingAudio ProcessingType = "audio"
	ProcessingGif   ProcessingType = "gif"
	ProcessingRemux ProcessingType = "remux"
)

// LocalProcessingInfo is carried by the local-processing variant. Tunnel
// holds the ordered intermediate stream URLs the caller must fetch.
type LocalProcessingInfo struct {
	Type    ProcessingType `json:"type"`
	Service string         `json:"service"`
	Tunnel  []string       `json:"tunnel"`
	Output  *OutputInfo    `json:"output,omitempty"`
	Audio   *AudioParams   `json:"audio,omitempty"`
	IsHLS   bool           `json:"isHls,omitempty"`
}

// OutputInfo describes the file the caller should produce.
type OutputInfo struct {
	Type      string            `json:"type"` // MIME type
	Filename  string            `json:"filename"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Subtitles bool              `json:"subtitles,omitempty"`
}

// AudioParams describes how the audio track should be handled when
// combining local-processing streams.
type AudioParams struct {
	Copy      bool   `json:"copy"`
	Format    string `json:"format"`
	Bitrate   string `json:"bitrate"`
	Cover     bool   `json:"cover,omitempty"`
	CropCover bool   `json:"cropCover,omitempty"`
}

// PickerItemType classifies a selectable picker entry.
type PickerItemType string

const (
	PickerItemPhoto PickerItemType = "photo"
	PickerItemVideo PickerItemType = "video"
	PickerItemGif   PickerItemType = "gif"
)

// PickerInfo is carried by the picker variant: a list of selectable media
// items plus an optional shared background audio track.
type PickerInfo struct {
	Items         []PickerItem `json:"picker"`
	Audio         string       `json:"audio,omitempty"`
	AudioFilename string       `json:"audioFilename,omitempty"`
}

// PickerItem is one selectable media entry.
type PickerItem struct {
	Type  PickerItemType `json:"type"`
	URL   string         `json:"url"`
	Thumb string         `json:"thumb,omitempty"`
}

// ErrorInfo is carried by the error variant.
type ErrorInfo struct {
	Code    string        `json:"code"`
	Context *ErrorContext `json:"context,omitempty"`
}

// ErrorContext optionally qualifies an API error. Limit is either a duration
// cap in minutes or a rate-limit window depending on the code.
type ErrorContext struct {
	Service string  `json:"service,omitempty"`
	Limit   float64 `json:"limit,omitempty"`
}

// InstanceInfo mirrors the payload returned by GET /.
type InstanceInfo struct {
	Instance InstanceDetails `json:"instance"`
	Git      GitInfo         `json:"git"`
}

// InstanceDetails describes the running instance.
type InstanceDetails struct {
	Version          string   `json:"version"`
	URL              string   `json:"url"`
	StartTime        string   `json:"startTime"`
	TurnstileSitekey string   `json:"turnstileSitekey,omitempty"`
	Services         []string `json:"services"`
}

// GitInfo reports the instance's source-control provenance.
type GitInfo struct {
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Remote string `json:"remote"`
}
