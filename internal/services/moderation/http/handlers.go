// Package http provides http transport for moderation
package http

import (
	"context"
	stdhttp "net/http"

	"skillreel/internal/modkit/httpkit"
	"skillreel/internal/modkit/scope"
	"skillreel/internal/platform/net/middleware"
	"skillreel/internal/services/moderation/domain"
)

// Register mounts the router
// writes and the review queue sit behind auth when a port is given; lookups stay open
func Register(r httpkit.Router, s domain.ServicePort, auth middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LookupInput](r, "/lookup", h.lookup)
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.ModerateInput](pr, "/videos", h.moderate)
		httpkit.PostJSON[domain.ModerateInput](pr, "/videos/enqueue", h.enqueue)
		httpkit.PostJSON[domain.ReviewQuery](pr, "/review", h.review)
	})
}

type handlers struct{ svc domain.ServicePort }

// callerCtx scopes the authenticated caller onto the request context
func callerCtx(r *stdhttp.Request) context.Context {
	return scope.With(r.Context(), map[string]string{scope.Caller: httpkit.CallerOr(r, "")})
}

// swagger:route POST /moderation/videos Moderation moderate
// @Summary Moderate a video synchronously
// @Description Runs safety analysis and skill classification on the video metadata and stores the verdict
// @Tags moderation
// @Accept json
// @Produce json
// @Param payload body domain.ModerateInput true "Video"
// @Success 200 {object} domain.Record "ok"
// @Failure 400 {object} httpkit.Envelope "invalid body"
// @Failure 401 {object} httpkit.Envelope "missing or unknown service token"
// @Failure 422 {object} httpkit.Envelope "invalid argument"
// @Security BearerAuth
// @Router /moderation/videos [post]
func (h *handlers) moderate(r *stdhttp.Request, in domain.ModerateInput) (any, error) {
	return h.svc.ModerateVideo(callerCtx(r), in)
}

// swagger:route POST /moderation/videos/enqueue Moderation enqueue
// @Summary Queue a video for moderation
// @Tags moderation
// @Accept json
// @Produce json
// @Param payload body domain.ModerateInput true "Video"
// @Success 201 {object} domain.EnqueueOutput "queued"
// @Security BearerAuth
// @Router /moderation/videos/enqueue [post]
func (h *handlers) enqueue(r *stdhttp.Request, in domain.ModerateInput) (any, error) {
	out, err := h.svc.Enqueue(callerCtx(r), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route POST /moderation/lookup Moderation lookup
// @Summary Current moderation record for a video
// @Tags moderation
// @Accept json
// @Produce json
// @Param payload body domain.LookupInput true "Lookup"
// @Success 200 {object} domain.Record "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /moderation/lookup [post]
func (h *handlers) lookup(r *stdhttp.Request, in domain.LookupInput) (any, error) {
	return h.svc.Get(r.Context(), in.VideoID)
}

// swagger:route POST /moderation/review Moderation review
// @Summary Records whose analysis degraded
// @Tags moderation
// @Accept json
// @Produce json
// @Param payload body domain.ReviewQuery true "Review"
// @Success 200 {object} domain.ReviewOutput "ok"
// @Security BearerAuth
// @Router /moderation/review [post]
func (h *handlers) review(r *stdhttp.Request, in domain.ReviewQuery) (any, error) {
	items, err := h.svc.ListReview(r.Context(), in.Limit)
	if err != nil {
		return nil, err
	}
	return domain.ReviewOutput{Items: items}, nil
}
