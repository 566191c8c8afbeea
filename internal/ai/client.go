// Package ai wraps the Gemini API for the three generation capabilities the
// backend exposes: icon images, image analysis, and speech.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type Config struct {
	APIKey      string
	ImageModel  string
	VisionModel string
	TTSModel    string
}

type Client struct {
	client      *genai.Client
	imageModel  string
	visionModel string
	ttsModel    string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.5-flash-image-preview"
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = "gemini-2.5-flash"
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = "gemini-2.5-flash-preview-tts"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client:      client,
		imageModel:  cfg.ImageModel,
		visionModel: cfg.VisionModel,
		ttsModel:    cfg.TTSModel,
	}, nil
}

// ImageResult is a generated icon image.
type ImageResult struct {
	Data     []byte
	MIMEType string
	Model    string
}

// GenerateIcon produces a single icon image for the prompt.
func (c *Client) GenerateIcon(ctx context.Context, prompt string) (*ImageResult, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageResult{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Model:    c.imageModel,
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("model %s returned no image data", c.imageModel)
}

// AnalysisResult describes an input image. Fallback marks a heuristic
// description substituted because the vision model was unavailable.
type AnalysisResult struct {
	Description string
	Model       string
	Fallback    bool
	Warning     string
}

// AnalyzeImage asks the vision model for a short description of the image.
func (c *Client) AnalyzeImage(ctx context.Context, data []byte, mimeType string) (*AnalysisResult, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText("Describe this image as a short AAC icon label. Answer with one short phrase."),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.visionModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("model %s returned no description", c.visionModel)
	}
	return &AnalysisResult{Description: text, Model: c.visionModel}, nil
}

// AnalyzeImageWithFallback degrades to a heuristic description when the
// vision model is unavailable. The upstream error is preserved as a warning
// so callers can report a qualified success instead of a failure.
func (c *Client) AnalyzeImageWithFallback(ctx context.Context, data []byte, mimeType string) (*AnalysisResult, error) {
	result, err := c.AnalyzeImage(ctx, data, mimeType)
	if err == nil {
		return result, nil
	}
	return &AnalysisResult{
		Description: HeuristicDescription(mimeType, len(data)),
		Fallback:    true,
		Warning:     err.Error(),
	}, nil
}

// HeuristicDescription is the vision-unavailable fallback label.
func HeuristicDescription(mimeType string, size int) string {
	return fmt.Sprintf("uploaded %s image (%d bytes)", mimeType, size)
}

// SpeechResult is synthesized audio for an icon label.
type SpeechResult struct {
	Data     []byte
	MIMEType string
	Model    string
}

// Synthesize produces speech audio for the given text.
func (c *Client) Synthesize(ctx context.Context, text string) (*SpeechResult, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.ttsModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: "Kore"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &SpeechResult{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
					Model:    c.ttsModel,
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("model %s returned no audio data", c.ttsModel)
}
