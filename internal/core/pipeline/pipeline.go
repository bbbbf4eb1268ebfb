// Package pipeline runs one annotation: prepare, classify, format, accumulate
package pipeline

import (
	"context"
	"strings"
	"time"

	"entitylens/internal/core/classifier"
	"entitylens/internal/core/entity"
	"entitylens/internal/core/sink"
	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/logger"
	pstrings "entitylens/internal/platform/strings"

	"github.com/google/uuid"
)

// Formatter renders one entity over its span text
type Formatter interface {
	Format(e entity.Entity, text string) (string, error)
}

// Stage names used in diagnostics
const (
	StagePrepare  = "prepare"
	StageClassify = "classify"
	StageFormat   = "format"
)

// Diagnostic records a recoverable problem seen during a run
type Diagnostic struct {
	Stage   string         `json:"stage"`
	Code    perr.ErrorCode `json:"code"`
	Message string         `json:"message"`
}

// Report describes a finished run
type Report struct {
	RunID       string        `json:"run_id"`
	Spans       entity.Result `json:"spans"`
	Entities    int           `json:"entities"`
	Lines       []string      `json:"lines"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// Pipeline wires a classifier to a formatter
type Pipeline struct {
	clf    classifier.Classifier
	format Formatter
	now    func() time.Time
}

// New returns a Pipeline; both dependencies are required
func New(clf classifier.Classifier, f Formatter) *Pipeline {
	if clf == nil || f == nil {
		panic("pipeline: nil classifier or formatter")
	}
	return &Pipeline{clf: clf, format: f, now: time.Now}
}

// Run annotates input and appends one line per entity to out
// a classification failure is reported as a diagnostic with a nil error;
// a malformed entity aborts the run before anything reaches out
func (p *Pipeline) Run(ctx context.Context, input string, out *sink.Sink) (rep Report, err error) {
	start := p.now()
	rep = Report{RunID: uuid.NewString(), Spans: entity.Result{}, Lines: []string{}, Diagnostics: []Diagnostic{}}
	ctx = logger.WithRun(ctx, rep.RunID)
	log := logger.C(ctx)
	defer func() { rep.Elapsed = p.now().Sub(start) }()

	if out == nil {
		return rep, perr.InvalidArgf("pipeline: nil sink")
	}

	if err = p.clf.Prepare(ctx); err != nil {
		if ctx.Err() != nil || perr.IsCode(err, perr.ErrorCodeCanceled) {
			log.Debug().Err(err).Msg("run abandoned during prepare")
			if !perr.IsCode(err, perr.ErrorCodeCanceled) {
				err = perr.Wrap(err, perr.ErrorCodeCanceled, "annotation canceled")
			}
			return rep, err
		}
		if !perr.IsCode(err, perr.ErrorCodeModelUnavailable) {
			err = perr.Wrap(err, perr.ErrorCodeModelUnavailable, "model unavailable")
		}
		log.Error().Err(err).Msg("prepare failed")
		return rep, err
	}

	var outcome classifier.Outcome
	select {
	case <-ctx.Done():
		// the late outcome is never read, so it cannot reach out
		log.Debug().Err(ctx.Err()).Msg("run abandoned")
		return rep, perr.Wrap(ctx.Err(), perr.ErrorCodeCanceled, "annotation canceled")
	case outcome = <-p.clf.Classify(ctx, input):
	}
	if ctx.Err() != nil {
		return rep, perr.Wrap(ctx.Err(), perr.ErrorCodeCanceled, "annotation canceled")
	}

	if outcome.Err != nil {
		log.Warn().Err(outcome.Err).Str("input", pstrings.Preview(input, 64)).Msg("classification failed")
		rep.Diagnostics = append(rep.Diagnostics, Diagnostic{
			Stage:   StageClassify,
			Code:    perr.CodeOf(outcome.Err),
			Message: outcome.Err.Error(),
		})
		return rep, nil
	}

	lines := make([]string, 0, outcome.Result.EntityCount())
	for _, span := range outcome.Result {
		for i := 0; i < span.Len(); i++ {
			line, ferr := p.format.Format(span.At(i), span.Text())
			if ferr != nil {
				log.Error().Err(ferr).Str("kind", span.At(i).Kind().String()).Msg("format failed")
				return rep, ferr
			}
			lines = append(lines, line)
		}
	}

	out.AppendAll(lines...)
	rep.Spans = outcome.Result
	rep.Entities = len(lines)
	rep.Lines = lines
	if e := log.Debug(); e.Enabled() {
		e.Int("spans", len(outcome.Result)).
			Int("entities", len(lines)).
			Str("output", strings.Join(lines, "\n")).
			Msg("run complete")
	}
	return rep, nil
}

// Collect runs input against a fresh sink and returns its lines
func (p *Pipeline) Collect(ctx context.Context, input string) ([]string, Report, error) {
	s := sink.New()
	rep, err := p.Run(ctx, input, s)
	if err != nil {
		return nil, rep, err
	}
	return s.Snapshot(), rep, nil
}
