package synth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jpclemente97/MCT4052FinalProject/file"
	"github.com/jpclemente97/MCT4052FinalProject/midi"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Sink receives every synthesized performance of a run.
type Sink interface {
	Write(ctx context.Context, name string, notes []model.SynthNote, tempo float64) error
}

// DirSink writes performances as SMF files into Dir.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(ctx context.Context, name string, notes []model.SynthNote, tempo float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return midi.WriteGrooveFile(filepath.Join(s.Dir, name), notes, tempo)
}

type Manifest struct {
	RunID     string    `json:"run_id"`
	DrummerID uint32    `json:"drummer_id"`
	Seed      uint64    `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
	Files     []string  `json:"files"`
}

func WriteManifest(dir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding manifest")
	}
	path := filepath.Join(dir, "manifest.json")
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing %v", path)
}

// OutputName is the file name of the index-th performance of a run.
func OutputName(cfg SynthesisConfig, index int) string {
	return file.Meta{
		ID:            strconv.FormatUint(uint64(cfg.DrummerID), 10),
		Style:         cfg.Style,
		Tempo:         cfg.Tempo,
		IsBeat:        true,
		TimeSignature: "4-4",
		Sequence:      index,
	}.Name()
}

// Render synthesizes the index-th performance of a run. Each index gets its
// own source seeded from seed+index, so a run is reproducible given its seed.
func Render(cfg SynthesisConfig, dists map[model.InstrumentGroup]GroupDistributions, seed uint64, index int) ([]model.SynthNote, error) {
	src := rand.NewSource(seed + uint64(index))
	return Synthesize(dists, cfg.NoteCountPerGroup, cfg.GridSpacing, src)
}

// Run renders cfg.OutputCount performances across cfg.Workers goroutines and
// hands them to sink. The first error stops the run.
func Run(ctx context.Context, cfg SynthesisConfig, profile model.GrooveProfile, sink Sink) (Manifest, error) {
	log := zap.L().Named("synth")

	if err := cfg.Validate(); err != nil {
		return Manifest{}, err
	}
	dists, err := Distributions(profile)
	if err != nil {
		return Manifest{}, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m := Manifest{
		RunID:     uuid.New().String(),
		DrummerID: cfg.DrummerID,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
		Files:     make([]string, cfg.OutputCount),
	}
	log.Info("starting run",
		zap.String("run_id", m.RunID),
		zap.Uint32("drummer", cfg.DrummerID),
		zap.Uint64("seed", seed),
		zap.Int("outputs", cfg.OutputCount))

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	// each worker reports at most one error
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				notes, err := Render(cfg, dists, seed, i)
				if err == nil {
					err = sink.Write(ctx, OutputName(cfg, i), notes, float64(cfg.Tempo))
				}
				if err != nil {
					errs <- errors.Wrapf(err, "performance %v", i)
					cancel()
					return
				}
				m.Files[i] = OutputName(cfg, i)
				log.Debug("rendered", zap.Int("index", i), zap.Int("notes", len(notes)))
			}
		}()
	}

feed:
	for i := 0; i < cfg.OutputCount; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return m, err
	}
	if err := ctx.Err(); err != nil {
		return m, err
	}
	log.Info("run finished", zap.String("run_id", m.RunID), zap.Int("files", len(m.Files)))
	return m, nil
}
