// Package http provides HTTP transport for the annotate API
package http

import (
	stdhttp "net/http"

	"entitylens/internal/modkit/httpkit"
	"entitylens/internal/platform/net/http/bind"
	"entitylens/internal/services/annotate/domain"
)

// Register mounts annotate endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// unknown fields are tolerated so older clients keep working
	httpkit.PostJSON(r, "/", h.annotate, bind.JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: false})
	httpkit.GetJSON(r, "/kinds", h.kinds)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /annotate Annotate annotateText
// @Summary Classify text and render one line per entity
// @Tags Annotate
// @Accept json
// @Produce json
// @Param payload body domain.AnnotateInput true "Text to annotate"
// @Success 200 {object} domain.AnnotateOutput "ok"
// @Router /annotate [post]
func (h *handlers) annotate(r *stdhttp.Request, in domain.AnnotateInput) (any, error) {
	return h.svc.Annotate(r.Context(), in)
}

// swagger:route GET /annotate/kinds Annotate annotateKinds
// @Summary Entity kinds and their line templates
// @Tags Annotate
// @Produce json
// @Param locale query string false "Template language"
// @Success 200 {object} domain.KindsOutput "ok"
// @Router /annotate/kinds [get]
func (h *handlers) kinds(r *stdhttp.Request) (any, error) {
	in := domain.KindsInput{Locale: r.URL.Query().Get("locale")}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Kinds(r.Context(), in)
}
