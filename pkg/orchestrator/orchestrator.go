// Package orchestrator coordinates the conversion stages for one request.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/ports"
)

// Stages holds one implementation per pipeline step.
type Stages struct {
	Detect      pipeline.Stage[pipeline.DetectInput, pipeline.DetectResult]
	Schedule    pipeline.Stage[pipeline.ScheduleInput, pipeline.ScheduleResult]
	Materialize pipeline.Stage[pipeline.MaterializeInput, pipeline.MaterializeResult]
	Plan        pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult]
	Encode      pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
}

// Request is one conversion. Requests share nothing but the worker pool.
type Request struct {
	// ID correlates logs, staging and debug output. Empty gets a UUID.
	ID string
	// Name is the original file name, used only for the staged copy.
	Name string
	Data []byte
	Kind media.StickerKind
}

// Result is the outcome of a successful conversion.
type Result struct {
	ID          string
	Data        []byte
	Container   media.Container
	ContentKind media.ContentKind
	Plan        media.EncodePlan
	// Oversize is true when Data exceeds the sticker kind's size limit.
	Oversize bool
}

// ProbeResult describes what Convert would do with an input.
type ProbeResult struct {
	ID          string
	ContentKind media.ContentKind
	MIME        string
	Durations   media.DurationList
	Schedule    media.RepeatSchedule
	Plan        media.EncodePlan
}

// Orchestrator runs requests through the stages.
type Orchestrator struct {
	stages   Stages
	decoders ports.DecoderFactory
	staging  ports.StagingFactory
	sink     ports.DebugSink
	logger   ports.Logger
}

// New creates a new Orchestrator.
func New(
	stages Stages,
	decoders ports.DecoderFactory,
	staging ports.StagingFactory,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		stages:   stages,
		decoders: decoders,
		staging:  staging,
		sink:     sink,
		logger:   logger,
	}
}

// analysis is the shared front half of Convert and Probe.
type analysis struct {
	detected pipeline.DetectResult
	input    string
	decoder  ports.FrameDecoder // nil on the static path
	schedule pipeline.ScheduleResult
	plan     media.EncodePlan
}

// request tracks the resources one call must release.
type request struct {
	id       string
	releases []func() error
}

func (r *request) onExit(release func() error) {
	r.releases = append(r.releases, release)
}

// close releases in reverse order. Failures are logged, never returned.
func (o *Orchestrator) close(r *request) {
	var errs error
	for i := len(r.releases) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, r.releases[i]())
	}
	for _, err := range multierr.Errors(errs) {
		var cleanup *media.ResourceCleanupFailure
		if !errors.As(err, &cleanup) {
			err = &media.ResourceCleanupFailure{Resource: "request " + r.id, Err: err}
		}
		o.logger.Warn("Cleanup failed: %v", err)
	}
}

// Convert turns req.Data into a sticker. The staging area is removed on
// every return path.
func (o *Orchestrator) Convert(ctx context.Context, req Request) (Result, error) {
	r := &request{id: requestID(req.ID)}
	defer o.close(r)

	o.logger.Info("Converting %s (%d bytes) as %s sticker", displayName(req), len(req.Data), req.Kind)

	area, err := o.staging.Acquire(r.id)
	if err != nil {
		return Result{}, fmt.Errorf("staging: %w", err)
	}
	r.onExit(area.Release)

	a, err := o.analyze(ctx, r, req, area)
	if err != nil {
		return Result{}, err
	}

	profile := media.ProfileFor(req.Kind)
	encodeInput := pipeline.EncodeInput{Plan: a.plan, Input: a.input, Profile: profile}

	if a.plan.IsAnimated {
		materialized, err := o.stages.Materialize.Execute(ctx, pipeline.MaterializeInput{
			Decoder:  a.decoder,
			Schedule: a.schedule.Schedule,
			Staging:  area,
		})
		if err != nil {
			o.logger.Error("Failed to materialize frames: %v", err)
			return Result{}, fmt.Errorf("materialize stage: %w", err)
		}
		encodeInput.Sequence = materialized.Sequence

		if o.sink.Enabled() {
			if err := o.sink.SaveContactSheet(r.id, materialized.Sequence); err != nil {
				o.logger.Warn("Failed to save debug output: %v", err)
			}
		}
	}

	encoded, err := o.stages.Encode.Execute(ctx, encodeInput)
	if err != nil {
		o.logger.Error("Failed to encode sticker: %v", err)
		return Result{}, fmt.Errorf("encode stage: %w", err)
	}

	o.logger.Info("Conversion completed: %s, %d bytes", encoded.Container, encoded.FileSize)
	return Result{
		ID:          r.id,
		Data:        encoded.Data,
		Container:   encoded.Container,
		ContentKind: a.detected.Kind,
		Plan:        a.plan,
		Oversize:    encoded.Oversize,
	}, nil
}

// Probe runs detection, duration extraction and planning without
// materializing or encoding anything.
func (o *Orchestrator) Probe(ctx context.Context, req Request) (ProbeResult, error) {
	r := &request{id: requestID(req.ID)}
	defer o.close(r)

	area, err := o.staging.Acquire(r.id)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("staging: %w", err)
	}
	r.onExit(area.Release)

	a, err := o.analyze(ctx, r, req, area)
	if err != nil {
		return ProbeResult{}, err
	}
	return ProbeResult{
		ID:          r.id,
		ContentKind: a.detected.Kind,
		MIME:        a.detected.MIME,
		Durations:   a.schedule.Durations,
		Schedule:    a.schedule.Schedule,
		Plan:        a.plan,
	}, nil
}

func (o *Orchestrator) analyze(ctx context.Context, r *request, req Request, area ports.Staging) (analysis, error) {
	var a analysis

	detected, err := o.stages.Detect.Execute(ctx, pipeline.DetectInput{Data: req.Data})
	if err != nil {
		return a, fmt.Errorf("detect stage: %w", err)
	}
	a.detected = detected

	a.input, err = area.WriteInput(inputName(req.Name, detected.Kind), req.Data)
	if err != nil {
		return a, err
	}

	if detected.Kind.Animatable() {
		dec, err := o.decoders.Open(ctx, detected.Kind, a.input)
		switch {
		case errors.Is(err, media.ErrUnrecognizedFormat):
			o.logger.Info("No decoder for %s, using still image path", detected.Kind)
		case err != nil:
			o.logger.Error("Failed to open %s: %v", detected.Kind, err)
			return a, err
		default:
			r.onExit(dec.Release)
			a.decoder = dec

			a.schedule, err = o.stages.Schedule.Execute(ctx, pipeline.ScheduleInput{Decoder: dec})
			if err != nil {
				o.logger.Error("Failed to read frame durations: %v", err)
				return a, fmt.Errorf("schedule stage: %w", err)
			}
			o.saveJSON(r.id, o.sink.SaveDurationsJSON, a.schedule.Durations)
			o.saveJSON(r.id, o.sink.SaveScheduleJSON, a.schedule.Schedule)
		}
	} else {
		o.logger.Info("Input is %s, using still image path", detected.Kind)
	}

	sched := a.schedule.Schedule
	if a.schedule.Static {
		if a.schedule.Reason != nil {
			o.logger.Debug("Static schedule: %v", a.schedule.Reason)
		}
		sched = media.RepeatSchedule{}
	}
	planned, err := o.stages.Plan.Execute(ctx, pipeline.PlanInput{Schedule: sched, Profile: media.ProfileFor(req.Kind)})
	if err != nil {
		return a, fmt.Errorf("plan stage: %w", err)
	}
	a.plan = planned.Plan
	o.saveJSON(r.id, o.sink.SavePlanJSON, a.plan)
	return a, nil
}

func (o *Orchestrator) saveJSON(id string, save func(string, []byte) error, v any) {
	if !o.sink.Enabled() {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err == nil {
		err = save(id, data)
	}
	if err != nil {
		o.logger.Warn("Failed to save debug output: %v", err)
	}
}

func requestID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func displayName(req Request) string {
	if req.Name != "" {
		return req.Name
	}
	return "input"
}

// inputName keeps the base of the original name and makes sure the
// extension matches the sniffed content, which ffmpeg relies on for stills.
func inputName(name string, kind media.ContentKind) string {
	base := filepath.Base(name)
	if name == "" || base == "." || base == string(filepath.Separator) {
		base = "input"
	}
	ext := ""
	switch kind {
	case media.KindGIF, media.KindWebP, media.KindAVIF:
		ext = "." + string(kind)
	}
	if ext != "" && filepath.Ext(base) != ext {
		base += ext
	}
	return base
}
