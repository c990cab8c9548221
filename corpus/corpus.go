package corpus

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jpclemente97/MCT4052FinalProject/feature"
	"github.com/jpclemente97/MCT4052FinalProject/midi"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/jpclemente97/MCT4052FinalProject/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

var ErrNoPerformances = errors.New("no usable performances")

const progressInterval = 200 * time.Millisecond

// Result is the outcome of one file. Err is set when the file was readable
// but can't be used: unparsable, malformed event stream or degenerate
// histograms.
type Result struct {
	Path     string
	Features model.Features
	Err      error
}

func DrummerDir(root string, drummerID uint32) string {
	return filepath.Join(root, fmt.Sprintf("drummer%d", drummerID))
}

// LoadDrummer lists every performance recorded by a drummer under root.
func LoadDrummer(root string, drummerID uint32) (model.Drummer, error) {
	d := model.Drummer{ID: drummerID, Name: fmt.Sprintf("drummer%d", drummerID)}
	paths, err := util.GatherAllMidiPaths(DrummerDir(root, drummerID), 0)
	if err != nil {
		return d, err
	}
	d.Files = paths
	return d, nil
}

func processMidiFile(path string) (Result, error) {
	res := Result{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return res, errors.Wrapf(err, "reading %v", path)
	}

	s, err := midi.ReadMidi(bytes.NewReader(data))
	if err != nil {
		res.Err = err
		return res, nil
	}
	p, err := midi.NewPerformance(path, s)
	if err != nil {
		res.Err = err
		return res, nil
	}
	res.Features, res.Err = feature.Extract(p)
	return res, nil
}

// ExtractAll extracts features from every path using workers goroutines.
// Results are in the same order as paths. An unreadable file aborts the whole
// run.
func ExtractAll(ctx context.Context, paths []string, workers int) ([]Result, error) {
	log := zap.L().Named("corpus")
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(paths))
	progress := debounce.New(progressInterval)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := processMidiFile(paths[i])
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					return
				}
				results[i] = res
				done++
				n := done
				mu.Unlock()

				if res.Err != nil {
					log.Debug("skipping file", zap.String("path", res.Path), zap.Error(res.Err))
				}
				progress(func() {
					log.Info(fmt.Sprintf("Processing %v of %v midi files", n, len(paths)))
				})
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Usable keeps the features of the results that extracted cleanly.
func Usable(results []Result) []model.Features {
	var res []model.Features
	for _, r := range results {
		if r.Err == nil {
			res = append(res, r.Features)
		}
	}
	return res
}

// Aggregate averages per performance histograms into a drummer's profile.
// Each group's histograms still sum to 1.
func Aggregate(features []model.Features) (model.GrooveProfile, error) {
	p := model.NewGrooveProfile()
	if len(features) == 0 {
		return p, ErrNoPerformances
	}

	for i, f := range features {
		if len(f.Velocity) != len(model.FeatureOrder)*model.VelocityBins ||
			len(f.Microtiming) != len(model.FeatureOrder)*model.MicrotimingBins {
			return p, errors.Errorf("features %v have %v velocity and %v microtiming weights", i, len(f.Velocity), len(f.Microtiming))
		}
		for _, g := range model.FeatureOrder {
			v, m := f.Group(g)
			floats.Add(p.Velocity[g], v)
			floats.Add(p.Microtiming[g], m)
		}
	}

	scale := 1 / float64(len(features))
	for _, g := range model.FeatureOrder {
		floats.Scale(scale, p.Velocity[g])
		floats.Scale(scale, p.Microtiming[g])
	}
	return p, nil
}

// Report describes how a drummer's files were used.
type Report struct {
	Used    int
	Skipped []Result
}

// AggregateDrummer extracts and averages all of d's performances.
func AggregateDrummer(ctx context.Context, d model.Drummer, workers int) (model.GrooveProfile, Report, error) {
	log := zap.L().Named("corpus")
	var report Report

	results, err := ExtractAll(ctx, d.Files, workers)
	if err != nil {
		return model.GrooveProfile{}, report, err
	}
	for _, r := range results {
		if r.Err != nil {
			report.Skipped = append(report.Skipped, r)
		}
	}
	usable := Usable(results)
	report.Used = len(usable)

	log.Info("extracted drummer corpus",
		zap.String("drummer", d.Name),
		zap.Int("files", len(d.Files)),
		zap.Int("used", report.Used),
		zap.Int("skipped", len(report.Skipped)))

	p, err := Aggregate(usable)
	if err != nil {
		return p, report, errors.Wrapf(err, "%v", d.Name)
	}
	return p, report, nil
}
