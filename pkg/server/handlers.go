package server

import (
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/matzehuels/sankey/pkg/buildinfo"
	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatNodelink: "image/svg+xml",
}

// renderRequest renders either a stored layout or inline edges.
type renderRequest struct {
	LayoutID string `json:"layout_id,omitempty"`
	pipeline.Options
}

type hitRequest struct {
	LayoutID string `json:"layout_id,omitempty"`
	pipeline.Options
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type hitResponse struct {
	Hit   bool    `json:"hit"`
	Index int     `json:"index"` // input edge index, -1 without a hit
	From  string  `json:"from,omitempty"`
	To    string  `json:"to,omitempty"`
	Value float64 `json:"value,omitempty"`
	Node  string  `json:"node,omitempty"` // node under the point, if any
}

type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := requireEdges(&opts); err != nil {
		s.writeError(w, r, err)
		return
	}

	edges := graph.Document{Edges: opts.Edges}.FlowEdges()
	_, doc, hit, err := s.runner.ComputeLayout(r.Context(), edges, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.SaveLayout(r.Context(), doc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "store layout"))
		return
	}

	w.Header().Set("Location", "/v1/layout/"+doc.ID)
	setCacheHeader(w, hit)
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loadLayout(r, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	opts.Formats = []string{format}

	var (
		artifacts map[string][]byte
		hit       bool
		err       error
	)
	if req.LayoutID != "" {
		var doc graph.Layout
		var l layout.Layout
		if doc, err = s.loadLayout(r, req.LayoutID); err == nil {
			if l, err = graph.ToLayout(doc); err == nil {
				artifacts, hit, err = s.runner.RenderWithCacheInfo(r.Context(), l, doc, opts)
			}
		}
	} else if err = requireEdges(&opts); err == nil {
		var res *pipeline.Result
		if res, err = s.runner.Execute(r.Context(), opts); err == nil {
			artifacts, hit = res.Artifacts, res.CacheInfo.RenderHit
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	setCacheHeader(w, hit)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	var req hitRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var l layout.Layout
	if req.LayoutID != "" {
		doc, err := s.loadLayout(r, req.LayoutID)
		if err == nil {
			l, err = graph.ToLayout(doc)
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		if err := requireEdges(&req.Options); err != nil {
			s.writeError(w, r, err)
			return
		}
		var err error
		l, _, _, err = s.runner.ComputeLayout(r.Context(), graph.Document{Edges: req.Edges}.FlowEdges(), req.Options)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	resp := hitResponse{Index: -1}
	if i, b, ok := l.HitTest(req.X, req.Y); ok {
		resp.Hit, resp.Index = true, i
		resp.From, resp.To, resp.Value = b.From, b.To, b.Value
	}
	if id, ok := l.NodeAt(req.X, req.Y); ok {
		resp.Node = id
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// requireEdges rejects requests without inline edges. Server-side paths
// are never read.
func requireEdges(opts *pipeline.Options) error {
	opts.Input = ""
	if opts.Edges == nil {
		return errors.New(errors.ErrCodeInvalidInput, "edges required")
	}
	return graph.Document{Edges: opts.Edges}.Validate()
}

func (s *Server) loadLayout(r *http.Request, id string) (graph.Layout, error) {
	doc, err := s.store.LoadLayout(r.Context(), id)
	if stderrors.Is(err, cache.ErrNotFound) {
		return doc, errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
	}
	if err != nil {
		return doc, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "load layout")
	}
	return doc, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "err", err)
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
	}

	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = RequestID(r.Context())
	s.writeJSON(w, status, body)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
