// Package web exposes the browse contract over HTTP as JSON.
package web

import (
	"errors"
	"net/http"

	"github.com/alioygur/gores"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"remotebrowse/config"
	"remotebrowse/core"
	"remotebrowse/protocols"
)

type endpointView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Protocol string `json:"protocol_kind"`
}

type errorView struct {
	Error        string `json:"error"`
	EndpointID   string `json:"endpoint_id,omitempty"`
	EndpointName string `json:"endpoint_name,omitempty"`
}

// EndpointLister is the slice of the configuration store the endpoints view
// needs.
type EndpointLister interface {
	All() []config.Endpoint
}

// Browser runs one browse request.
type Browser interface {
	Browse(endpointID, path string) (*core.Listing, error)
}

type Server struct {
	endpoints EndpointLister
	browser   Browser
	logger    *zap.Logger
	mux       *http.ServeMux
}

func NewServer(endpoints EndpointLister, browser Browser, logger *zap.Logger) *Server {
	s := &Server{
		endpoints: endpoints,
		browser:   browser,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/endpoints", s.handleEndpoints)
	s.mux.HandleFunc("GET /api/browse", s.handleBrowse)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	eps := s.endpoints.All()
	views := make([]endpointView, 0, len(eps))
	for _, ep := range eps {
		views = append(views, endpointView{
			ID:       ep.ID,
			Name:     ep.Name,
			Protocol: protocols.ProtocolKind(ep.Protocol).Label(),
		})
	}
	gores.JSON(w, http.StatusOK, views)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("endpoint")
	if id == "" {
		gores.JSON(w, http.StatusBadRequest, errorView{Error: "missing endpoint parameter"})
		return
	}
	path := r.URL.Query().Get("path")

	listing, err := s.browser.Browse(id, path)
	if err != nil {
		var berr *core.BrowseError
		if !errors.As(err, &berr) {
			// The browser contract only emits BrowseError; anything else
			// is a bug worth noticing.
			s.logger.Error("unexpected browse failure", zap.Error(err))
			gores.JSON(w, http.StatusInternalServerError, errorView{Error: err.Error()})
			return
		}
		status := http.StatusBadGateway
		if berr.Kind == core.KindEndpointNotFound {
			status = http.StatusNotFound
		}
		gores.JSON(w, status, errorView{
			Error:        berr.Error(),
			EndpointID:   berr.EndpointID,
			EndpointName: berr.EndpointName,
		})
		return
	}
	gores.JSON(w, http.StatusOK, listing)
}
