package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jpclemente97/MCT4052FinalProject/midi"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/jpclemente97/MCT4052FinalProject/store"
	"github.com/jpclemente97/MCT4052FinalProject/synth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func profile() model.GrooveProfile {
	p := model.NewGrooveProfile()
	for _, g := range model.FeatureOrder {
		p.Velocity[g][10] = 1
		p.Microtiming[g][5] = 0.5
		p.Microtiming[g][6] = 0.5
	}
	return p
}

func newTestRouter(t *testing.T) http.Handler {
	s := store.CSV{Dir: t.TempDir()}
	require.NoError(t, s.Save(context.Background(), 1, profile()))

	cfg := synth.DefaultConfig(0)
	cfg.NoteCountPerGroup = 16
	return NewRouter(s, cfg)
}

func do(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProfile(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, "GET", "/drummers/1/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 6)
	assert.Equal(t, 1.0, body["snareVelocity"][10])
	assert.Len(t, body["hihatMicrotiming"], model.MicrotimingBins)

	rec = do(h, "GET", "/drummers/2/profile", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, "GET", "/drummers/abc/profile", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroove(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, "GET", "/drummers/1/groove?seed=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert := assert.New(t)
	assert.Equal("audio/midi", rec.Header().Get("Content-Type"))
	assert.Equal("5", rec.Header().Get("X-Groove-Seed"))
	assert.Contains(rec.Header().Get("Content-Disposition"), "1_rock_120_beat_4-4_0.mid")

	again := do(h, "GET", "/drummers/1/groove?seed=5", nil)
	assert.Equal(rec.Body.Bytes(), again.Body.Bytes())

	s, err := midi.ReadMidi(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	_, instruments, err := midi.Decode(s)
	require.NoError(t, err)
	for _, pitch := range []uint8{35, 38, 42} {
		require.Len(t, instruments[pitch], 16)
		for _, n := range instruments[pitch] {
			// bin 10 covers [80,88)
			assert.GreaterOrEqual(n.Velocity, uint8(80))
			assert.Less(n.Velocity, uint8(88))
		}
	}

	assert.Equal(http.StatusBadRequest, do(h, "GET", "/drummers/1/groove?seed=-1", nil).Code)
	assert.Equal(http.StatusNotFound, do(h, "GET", "/drummers/3/groove", nil).Code)
}

func TestFeatures(t *testing.T) {
	h := newTestRouter(t)

	var groove bytes.Buffer
	require.NoError(t, midi.WriteGroove(&groove, []model.SynthNote{
		{Pitch: 36, Time: 0, Duration: 0.25, Velocity: 100},
		{Pitch: 38, Time: 1, Duration: 0.25, Velocity: 90},
		{Pitch: 42, Time: 0, Duration: 0.25, Velocity: 60},
	}, 120))

	rec := do(h, "POST", "/features", groove.Bytes())
	require.Equal(t, http.StatusOK, rec.Code)
	var f model.Features
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Len(t, f.Velocity, 48)
	assert.Len(t, f.Microtiming, 30)

	var hats bytes.Buffer
	require.NoError(t, midi.WriteGroove(&hats, []model.SynthNote{{Pitch: 42, Duration: 0.25, Velocity: 60}}, 120))
	assert.Equal(t, http.StatusUnprocessableEntity, do(h, "POST", "/features", hats.Bytes()).Code)

	assert.Equal(t, http.StatusUnprocessableEntity, do(h, "POST", "/features", []byte("MThd nonsense")).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, "GET", "/features", nil).Code)
}

type staticStore struct {
	store.Store
	profile model.GrooveProfile
}

func (s staticStore) Load(ctx context.Context, drummerID uint32) (model.GrooveProfile, error) {
	return s.profile, nil
}

func TestUnencodableProfile(t *testing.T) {
	p := profile()
	p.Velocity[model.Snare][0] = math.NaN()
	h := NewRouter(staticStore{profile: p}, synth.DefaultConfig(0))

	rec := do(h, "GET", "/drummers/1/profile", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "encoding response")
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	srv := &Server{log: zap.New(core)}

	req := httptest.NewRequest("GET", "/drummers/1/groove", nil)
	srv.write(failingWriter{httptest.NewRecorder()}, req, []byte("MThd"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "writing response", logs.All()[0].Message)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest("GET", "/drummers/1/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
