package upload

import "context"

// Uploader stores an image (data URL or remote reference) with the asset
// host and returns the URL to persist alongside the message or profile.
type Uploader interface {
	Upload(ctx context.Context, image string) (string, error)
}

// Passthrough returns the reference unchanged. Good enough when clients
// already hold a hosted URL; swap in a real asset-host client otherwise.
type Passthrough struct{}

func (Passthrough) Upload(_ context.Context, image string) (string, error) {
	return image, nil
}
