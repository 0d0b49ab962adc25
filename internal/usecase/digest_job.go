package usecase

import (
	"context"
	"fmt"

	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/queue"
)

const DigestJobType = "digest.send"

// DigestPayload is the queue message for one digest run.
type DigestPayload struct {
	Classes []string `json:"classes"`
}

// DigestJob runs a digest when a digest.send message is consumed. Queue
// retries cover transient delivery failures.
type DigestJob struct {
	digest *Digest
}

func NewDigestJob(digest *Digest) *DigestJob {
	return &DigestJob{digest: digest}
}

func (j *DigestJob) Name() string { return "digest-sender" }
func (j *DigestJob) Type() string { return DigestJobType }

func (j *DigestJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[DigestPayload](payload)
	if err != nil {
		return fmt.Errorf("parse digest payload: %w", err)
	}

	classes := make([]drepo.AssetClass, 0, len(p.Classes))
	for _, s := range p.Classes {
		if c := drepo.NormalizeClass(s); c != "" {
			classes = append(classes, c)
		}
	}
	if len(classes) == 0 {
		classes = drepo.AllClasses()
	}
	return j.digest.Run(ctx, classes)
}
