package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/summarizer"
	"github.com/user/stickerize/pkg/workerpool"
)

func runConvert(c *cli.Context) error {
	inputs := c.Args().Slice()
	if len(inputs) == 0 {
		return errNoInput
	}
	output := c.String("output")
	if output != "" && len(inputs) > 1 {
		return errors.New("--output needs exactly one input, use --out-dir for several")
	}

	svc, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()

	jobs := workerpool.New(c.Int("jobs"))
	svc.log.Debug("Converting %d files with %d jobs", len(inputs), jobs.Size())

	report := summarizer.NewBuilder(svc.cfg.StickerKind())
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, input := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := summarizer.Entry{Input: input}
			err := jobs.Do(ctx, func(ctx context.Context) error {
				res, path, err := svc.convertFile(ctx, input, output, c.String("out-dir"))
				entry.Output = path
				entry.ContentKind = res.ContentKind
				entry.Container = res.Container
				entry.Plan = res.Plan
				entry.FileSize = len(res.Data)
				entry.Oversize = res.Oversize
				return err
			})
			entry.Err = err
			report.Add(entry)
			if err != nil {
				svc.log.Error("Failed to convert %s: %v", input, err)
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", input, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if path := c.String("summary"); path != "" {
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), svc.fs)
		if err := w.Write(path, report.Build()); err != nil {
			svc.log.Error("Failed to write summary: %v", err)
		} else {
			svc.log.Info("Summary saved to %s", path)
		}
	}

	if failed := len(multierr.Errors(errs)); failed > 0 {
		if len(inputs) == 1 {
			return errs
		}
		return fmt.Errorf("%d of %d files failed: %w", failed, len(inputs), errs)
	}
	return nil
}

// probeOutput is the JSON printed by the probe command.
type probeOutput struct {
	Input       string               `json:"input"`
	ContentKind media.ContentKind    `json:"content_kind"`
	MIME        string               `json:"mime,omitempty"`
	Durations   media.DurationList   `json:"durations"`
	Schedule    media.RepeatSchedule `json:"schedule"`
	Static      bool                 `json:"static"`
	Container   media.Container      `json:"container"`
	Plan        media.EncodePlan     `json:"plan"`
}

func runProbe(c *cli.Context) error {
	if c.NArg() != 1 {
		return errNoInput
	}
	input := c.Args().First()

	svc, ctx, cancel, err := setup(c)
	if err != nil {
		return err
	}
	defer cancel()

	req, err := svc.readRequest(input)
	if err != nil {
		return err
	}
	res, err := svc.orch.Probe(ctx, req)
	if err != nil {
		return err
	}

	durations := res.Durations
	if durations == nil {
		durations = media.DurationList{}
	}
	out := probeOutput{
		Input:       input,
		ContentKind: res.ContentKind,
		MIME:        res.MIME,
		Durations:   durations,
		Schedule:    res.Schedule,
		Static:      !res.Plan.IsAnimated,
		Container:   res.Plan.Container(),
		Plan:        res.Plan,
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
