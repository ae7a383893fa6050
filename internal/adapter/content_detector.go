package adapter

import (
	"context"

	"campus-quiz/internal/domain"
)

// UnimplementedDetector is the default content analysis adapter. No detection
// model is wired in, so it reports the check as unsupported rather than
// returning a made-up verdict.
type UnimplementedDetector struct{}

func NewUnimplementedDetector() domain.ContentDetector {
	return &UnimplementedDetector{}
}

func (d *UnimplementedDetector) Analyze(ctx context.Context, text string) (domain.ContentReport, error) {
	return domain.ContentReport{
		Supported: false,
		Verdict:   "content analysis is not available on this deployment",
	}, nil
}
