package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Element types recognized in a render configuration. Variants are resolved
// once during JSON decoding; the pipeline never re-inspects raw type tags.
const (
	ElementVideo     = "video"
	ElementSubtitles = "subtitles"
	ElementImage     = "image"
	ElementAudio     = "audio"
)

// VideoElement is the looping background video of the whole render.
type VideoElement struct {
	Src      string  `json:"src"`
	ZIndex   int     `json:"z-index"`
	Volume   float64 `json:"volume"`
	Resize   string  `json:"resize"`
	Duration float64 `json:"duration"` // 0 when the source duration is unknown
}

// SubtitleElement enables caption burn-in with the given styling.
type SubtitleElement struct {
	ID       string        `json:"id"`
	Settings SubtitleStyle `json:"settings"`
	Language string        `json:"language"`
}

// ImageElement is a scene-scoped overlay image.
type ImageElement struct {
	Src string `json:"src"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
}

// AudioElement is a scene-scoped narration/audio clip.
type AudioElement struct {
	Src string `json:"src"`
}

// UnknownElement preserves elements with an unrecognized type tag so that
// configs from newer clients still validate.
type UnknownElement struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// SceneElement is the closed variant set allowed inside a scene.
// Exactly one field is non-nil.
type SceneElement struct {
	Image   *ImageElement
	Audio   *AudioElement
	Unknown *UnknownElement
}

func (e *SceneElement) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("scene element missing type tag: %w", err)
	}
	switch tag.Type {
	case ElementImage:
		e.Image = &ImageElement{}
		return json.Unmarshal(data, e.Image)
	case ElementAudio:
		e.Audio = &AudioElement{}
		return json.Unmarshal(data, e.Audio)
	default:
		e.Unknown = &UnknownElement{Type: tag.Type, Raw: append([]byte(nil), data...)}
		return nil
	}
}

// GlobalElement is the closed variant set allowed at the top level of a
// configuration. Exactly one field is non-nil.
type GlobalElement struct {
	Video    *VideoElement
	Subtitle *SubtitleElement
	Unknown  *UnknownElement
}

func (e *GlobalElement) UnmarshalJSON(data []byte) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("element missing type tag: %w", err)
	}
	switch tag.Type {
	case ElementVideo:
		e.Video = &VideoElement{Volume: 0.5, Resize: "fit", ZIndex: -1}
		return json.Unmarshal(data, e.Video)
	case ElementSubtitles:
		e.Subtitle = &SubtitleElement{Settings: DefaultSubtitleStyle(), Language: "en"}
		return json.Unmarshal(data, e.Subtitle)
	default:
		e.Unknown = &UnknownElement{Type: tag.Type, Raw: append([]byte(nil), data...)}
		return nil
	}
}

// Scene is one ordered unit of the output video.
type Scene struct {
	ID              string         `json:"id"`
	BackgroundColor string         `json:"background-color"`
	Elements        []SceneElement `json:"elements"`
}

// VideoConfig is a validated render configuration.
type VideoConfig struct {
	Comment    string          `json:"comment,omitempty"`
	Resolution string          `json:"resolution"`
	Quality    string          `json:"quality"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Scenes     []Scene         `json:"scenes"`
	Elements   []GlobalElement `json:"elements"`
}

// BackgroundVideo returns the first background video element, or nil.
func (c *VideoConfig) BackgroundVideo() *VideoElement {
	for _, el := range c.Elements {
		if el.Video != nil {
			return el.Video
		}
	}
	return nil
}

// Subtitles returns the subtitle element, or nil when captions are not requested.
func (c *VideoConfig) Subtitles() *SubtitleElement {
	for _, el := range c.Elements {
		if el.Subtitle != nil {
			return el.Subtitle
		}
	}
	return nil
}

// AudioSources returns every audio element tagged with its scene index, in
// scene order.
func (c *VideoConfig) AudioSources() []SceneSource {
	var out []SceneSource
	for i, scene := range c.Scenes {
		for _, el := range scene.Elements {
			if el.Audio != nil && strings.TrimSpace(el.Audio.Src) != "" {
				out = append(out, SceneSource{SceneIndex: i, URL: el.Audio.Src})
			}
		}
	}
	return out
}

// ImageSources returns every image element tagged with its scene index, in
// scene order.
func (c *VideoConfig) ImageSources() []ImageSource {
	var out []ImageSource
	for i, scene := range c.Scenes {
		for _, el := range scene.Elements {
			if el.Image != nil && strings.TrimSpace(el.Image.Src) != "" {
				out = append(out, ImageSource{SceneIndex: i, URL: el.Image.Src, X: el.Image.X, Y: el.Image.Y})
			}
		}
	}
	return out
}

// SceneSource is an audio reference bound to its owning scene.
type SceneSource struct {
	SceneIndex int    `json:"scene_index"`
	URL        string `json:"url"`
}

// ImageSource is an image reference bound to its owning scene and position.
type ImageSource struct {
	SceneIndex int    `json:"scene_index"`
	URL        string `json:"url"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

// SubtitleStyle holds caption styling settings.
type SubtitleStyle struct {
	Style        string `json:"style"` // "progressive" | "classic"
	FontFamily   string `json:"font-family"`
	FontSize     int    `json:"font-size"`
	WordColor    string `json:"word-color"`
	LineColor    string `json:"line-color"`
	ShadowColor  string `json:"shadow-color"`
	ShadowOffset int    `json:"shadow-offset"`
	BoxColor     string `json:"box-color"`
	Position     string `json:"position"`
	OutlineColor string `json:"outline-color"`
	OutlineWidth int    `json:"outline-width"`
}

// DefaultSubtitleStyle mirrors the defaults applied before user settings are
// decoded on top.
func DefaultSubtitleStyle() SubtitleStyle {
	return SubtitleStyle{
		Style:        "progressive",
		FontFamily:   "Arial",
		FontSize:     24,
		WordColor:    "#FFFFFF",
		LineColor:    "#FFFFFF",
		ShadowColor:  "#000000",
		ShadowOffset: 2,
		BoxColor:     "#000000",
		Position:     "center-top",
		OutlineColor: "#000000",
		OutlineWidth: 3,
	}
}

// Validate performs the structural checks that do not require probing media.
func (c *VideoConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigurationError{Reason: "invalid video dimensions"}
	}
	if len(c.Scenes) == 0 {
		return &ConfigurationError{Reason: "no scenes specified"}
	}
	if c.BackgroundVideo() == nil {
		return &ConfigurationError{Reason: "no background video specified"}
	}
	return nil
}
