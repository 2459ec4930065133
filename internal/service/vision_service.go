package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// TextDetector extracts printed text from an image.
type TextDetector interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

type VisionService struct {
	svc *vision.Service
}

// NewVisionService builds a Cloud Vision client authenticated by API key.
// endpoint overrides the default API host when non-empty. Without a key the
// client is still built and every call fails upstream.
func NewVisionService(ctx context.Context, apiKey, endpoint string, opts ...option.ClientOption) (*VisionService, error) {
	auth := option.WithAPIKey(apiKey)
	if apiKey == "" {
		log.Println("Warning: GOOGLE_VISION_API_KEY not set, ID verification will fail")
		auth = option.WithoutAuthentication()
	}
	opts = append([]option.ClientOption{auth}, opts...)
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating vision client: %w", err)
	}
	return &VisionService{svc: svc}, nil
}

// DetectText returns the full text annotation of the image, or "" when none was found.
func (s *VisionService) DetectText(ctx context.Context, image []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []*vision.Feature{{Type: "TEXT_DETECTION"}},
			},
		},
	}
	resp, err := s.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("error calling vision API: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}
	first := resp.Responses[0]
	if first.Error != nil && first.Error.Message != "" {
		return "", fmt.Errorf("vision API rejected image: %s", first.Error.Message)
	}
	if first.FullTextAnnotation == nil {
		return "", nil
	}
	return first.FullTextAnnotation.Text, nil
}
