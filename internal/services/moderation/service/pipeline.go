package service

import (
	"context"
	"fmt"
	"time"

	"skillreel/internal/core/moderation"
	perr "skillreel/internal/platform/errors"
	"skillreel/internal/platform/logger"
	"skillreel/internal/services/moderation/domain"
)

// DefaultProviderTimeout bounds each external call when no timeout is configured
const DefaultProviderTimeout = 20 * time.Second

// Pipeline runs safety analysis, skill classification and the merge for one request
type Pipeline struct {
	safety   domain.SafetyProvider
	text     domain.TextProvider
	taxonomy *moderation.Taxonomy
	merger   moderation.Merger
	timeout  time.Duration
	log      logger.Logger
}

// PipelineOptions control pipeline behavior
type PipelineOptions struct {
	// Safety and Text are required
	Safety domain.SafetyProvider
	Text   domain.TextProvider

	// Taxonomy defaults to the embedded skill list
	Taxonomy *moderation.Taxonomy

	// Merger carries the injected confidence threshold; nil uses the default threshold
	Merger *moderation.Merger

	// Timeout bounds each provider call
	Timeout time.Duration
}

// NewPipeline constructs the pipeline
func NewPipeline(opt PipelineOptions) *Pipeline {
	if opt.Safety == nil {
		panic("moderation.Pipeline requires a non nil SafetyProvider")
	}
	if opt.Text == nil {
		panic("moderation.Pipeline requires a non nil TextProvider")
	}
	tx := opt.Taxonomy
	if tx == nil {
		var err error
		if tx, err = moderation.LoadTaxonomy(); err != nil {
			panic(fmt.Sprintf("moderation.Pipeline: embedded taxonomy: %v", err))
		}
	}
	m := moderation.DefaultMerger()
	if opt.Merger != nil {
		m = *opt.Merger
	}
	to := opt.Timeout
	if to <= 0 {
		to = DefaultProviderTimeout
	}
	return &Pipeline{
		safety:   opt.Safety,
		text:     opt.Text,
		taxonomy: tx,
		merger:   m,
		timeout:  to,
		log:      *logger.Named("moderation-pipeline"),
	}
}

// Taxonomy returns the skill categories the classifier is prompted with
func (p *Pipeline) Taxonomy() *moderation.Taxonomy { return p.taxonomy }

// Threshold returns the merger confidence threshold
func (p *Pipeline) Threshold() float64 { return p.merger.Threshold() }

// Timeout returns the per provider call bound
func (p *Pipeline) Timeout() time.Duration { return p.timeout }

// Providers returns the safety and skill provider names
func (p *Pipeline) Providers() (safety, skill string) { return p.safety.Name(), p.text.Name() }

// Moderate runs safety then skill, merges and assembles the result
// provider failures never abort; the only error is an assembly failure
func (p *Pipeline) Moderate(ctx context.Context, req moderation.Request) (res moderation.Result, err error) {
	// the skill prompt consumes the safety summary so the order is fixed
	safety := p.AnalyzeSafety(ctx, req.Title, req.Description)
	skill := p.ClassifySkill(ctx, req.Title, req.Description, safety.Summary)

	defer func() {
		if r := recover(); r != nil {
			res = moderation.Result{}
			err = perr.Newf(perr.ErrorCodeUnknown, "moderation: assemble result: %v", r)
			p.log.Error().Err(err).Str("video_url", req.VideoURL).Msg("moderation assembly panicked")
		}
	}()

	res, err = moderation.Assemble(req, safety, skill, p.merger)
	if err != nil {
		err = perr.Wrapf(err, perr.ErrorCodeUnknown, "moderation: assemble result")
		p.log.Error().Err(err).Str("video_url", req.VideoURL).Msg("moderation assembly failed")
		return moderation.Result{}, err
	}

	p.log.Info().
		Str("video_url", req.VideoURL).
		Bool("approved", res.Approved).
		Float64("confidence", res.ConfidenceScore).
		Bool("needs_review", res.NeedsReview()).
		Msg("moderation complete")
	return res, nil
}
