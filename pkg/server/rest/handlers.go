package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/twpayne/go-polyline"

	"github.com/jfrascon/gerona/pkg/apperr"
	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/jfrascon/gerona/pkg/planner"
)

// PathFinder is the subset of *planner.Planner the HTTP layer depends on.
type PathFinder interface {
	FindPath(ctx context.Context, start, end geom.Pose) ([]geom.Pose, error)
}

// PathHandler wires the one route this service exposes.
type PathHandler struct {
	planner PathFinder
}

// Router assembles the chi.Mux the way cmd/engine/main.go does: request
// logging, Prometheus instrumentation, permissive CORS, an optional rate
// limiter, pprof and metrics mounts, a swagger UI pointed at a hand-served
// doc.json, and the single POST /api/v1/path route.
func Router(finder PathFinder, m *Metrics, useRateLimit bool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(PromeHttpMiddleware(m))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(corsMiddleware())

	if useRateLimit {
		r.Use(Limit)
	}

	r.Mount("/debug", pprofMux())
	r.Handle("/metrics", metricsHandler())
	r.Get("/swagger/*", swaggerHandler())
	r.Get("/swagger/doc.json", swaggerDocHandler())

	handler := &PathHandler{planner: finder}
	r.Post("/api/v1/path", handler.FindPath)

	return r
}

// PathRequest is the POST /api/v1/path request body: a start and end pose in
// planar world coordinates.
type PathRequest struct {
	StartX     float64 `json:"start_x"`
	StartY     float64 `json:"start_y"`
	StartTheta float64 `json:"start_theta" validate:"gte=-3.141592653589793,lte=3.141592653589793"`
	EndX       float64 `json:"end_x"`
	EndY       float64 `json:"end_y"`
	EndTheta   float64 `json:"end_theta" validate:"gte=-3.141592653589793,lte=3.141592653589793"`
}

// Bind is a no-op beyond the decode chi/render already performed -- every
// field has a valid float64 zero value, so there is nothing further to
// reject here.
func (p *PathRequest) Bind(r *http.Request) error {
	return nil
}

// PathResponse is the POST /api/v1/path response body.
type PathResponse struct {
	Poses    []PoseDTO `json:"poses"`
	Polyline string    `json:"polyline"`
}

// PoseDTO is the wire representation of geom.Pose.
type PoseDTO struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

func renderPathResponse(path []geom.Pose) *PathResponse {
	poses := make([]PoseDTO, len(path))
	coords := make([][]float64, len(path))
	for i, p := range path {
		poses[i] = PoseDTO{X: p.Pos.X, Y: p.Pos.Y, Theta: p.Theta}
		coords[i] = []float64{p.Pos.X, p.Pos.Y}
	}
	return &PathResponse{
		Poses:    poses,
		Polyline: string(polyline.EncodeCoords(coords)),
	}
}

// FindPath handles POST /api/v1/path: validate, call the planner, render.
func (h *PathHandler) FindPath(w http.ResponseWriter, r *http.Request) {
	data := &PathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	if err := validateRequest(data); err != nil {
		render.Render(w, r, err)
		return
	}

	start := geom.NewPose(data.StartX, data.StartY, data.StartTheta)
	end := geom.NewPose(data.EndX, data.EndY, data.EndTheta)

	path, err := h.planner.FindPath(r.Context(), start, end)
	if err != nil && !errors.Is(err, planner.ErrNoCandidate) {
		render.Render(w, r, ErrFromCode(apperr.CodeOf(err), err))
		return
	}
	if len(path) == 0 {
		render.Render(w, r, ErrFromCode(apperr.ErrNotFound, err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, renderPathResponse(path))
}

func validateRequest(data *PathRequest) render.Renderer {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)

		var messages []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			messages = append(messages, fieldErr.Translate(trans))
		}
		return ErrValidation(err, messages)
	}
	return nil
}

// ErrResponse model info
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, StatusText: "Invalid request.", ErrorText: err.Error()}
}

func ErrValidation(err error, messages []string) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, StatusText: "Invalid request.", ErrorText: err.Error(), ErrValidation: messages}
}

// ErrFromCode maps an apperr.Code to the HTTP status its failure kind
// resolves to: not-found conditions render 404, everything else (map
// unavailable, internal failures) renders 500.
func ErrFromCode(code apperr.Code, err error) render.Renderer {
	status := http.StatusInternalServerError
	if code == apperr.ErrNotFound {
		status = http.StatusNotFound
	}
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &ErrResponse{Err: fmt.Errorf("%s", msg), HTTPStatusCode: status, StatusText: http.StatusText(status), ErrorText: msg}
}
