package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jpclemente97/MCT4052FinalProject/distribution"
	"github.com/jpclemente97/MCT4052FinalProject/feature"
	"github.com/jpclemente97/MCT4052FinalProject/midi"
	"github.com/jpclemente97/MCT4052FinalProject/store"
	"github.com/jpclemente97/MCT4052FinalProject/synth"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const maxUploadSize = 8 << 20

type Server struct {
	store store.Store
	// template for /groove, DrummerID and Seed are filled in per request
	defaults synth.SynthesisConfig
	log      *zap.Logger
}

// NewRouter serves the profiles in s. defaults configures the performances
// rendered by the groove endpoint.
func NewRouter(s store.Store, defaults synth.SynthesisConfig) http.Handler {
	srv := &Server{store: s, defaults: defaults, log: zap.L().Named("server")}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/drummers/{id:[0-9]+}/profile", srv.handleProfile).Methods("GET")
	router.HandleFunc("/drummers/{id:[0-9]+}/groove", srv.handleGroove).Methods("GET")
	router.HandleFunc("/features", srv.handleFeatures).Methods("POST")

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

func (s *Server) error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrMissingInput):
		status = http.StatusNotFound
	case errors.Is(err, feature.ErrDegenerateHistogram),
		errors.Is(err, midi.ErrUnmatchedRelease),
		errors.Is(err, midi.ErrUnsupportedTimeFormat),
		errors.Is(err, distribution.ErrEmptyDistribution),
		errors.Is(err, distribution.ErrInvalidWeights),
		errors.Is(err, store.ErrMalformedTable):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func drummerID(r *http.Request) (uint32, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint32(id), errors.Wrap(err, "drummer id")
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.error(w, r, errors.Wrap(err, "encoding response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	s.write(w, r, buf.Bytes())
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, body []byte) {
	if _, err := w.Write(body); err != nil {
		s.log.Warn("writing response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, err := drummerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.error(w, r, err)
		return
	}
	s.writeJSON(w, r, p)
}

func (s *Server) handleGroove(w http.ResponseWriter, r *http.Request) {
	id, err := drummerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg := s.defaults
	cfg.DrummerID = id
	if v := r.URL.Query().Get("seed"); v != "" {
		cfg.Seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "seed must be an unsigned integer", http.StatusBadRequest)
			return
		}
	}

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	p, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.error(w, r, err)
		return
	}
	dists, err := synth.Distributions(p)
	if err != nil {
		s.error(w, r, err)
		return
	}
	notes, err := synth.Render(cfg, dists, cfg.Seed, 0)
	if err != nil {
		s.error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := midi.WriteGroove(&buf, notes, float64(cfg.Tempo)); err != nil {
		s.error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("X-Groove-Seed", strconv.FormatUint(cfg.Seed, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+synth.OutputName(cfg, 0)+`"`)
	s.write(w, r, buf.Bytes())
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sm, err := midi.ReadMidi(bytes.NewReader(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.mid"
	}
	p, err := midi.NewPerformance(name, sm)
	if err != nil {
		s.error(w, r, err)
		return
	}
	f, err := feature.Extract(p)
	if err != nil {
		s.error(w, r, err)
		return
	}
	s.writeJSON(w, r, f)
}
