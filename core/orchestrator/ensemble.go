package orchestrator

import (
	"context"
	"sync"

	"github.com/philokalos/promptlens/core/errors"
	"github.com/philokalos/promptlens/core/golden"
	"github.com/philokalos/promptlens/core/providers"
)

// ensembleTemperatures are the sampling temperatures tried in parallel.
// Order matters: ties in score resolve to the lowest temperature.
var ensembleTemperatures = []float64{0.3, 0.5, 0.7}

type ensembleSample struct {
	result *Result
	total  float64
	err    error
}

// RewriteEnsemble samples the primary provider at several temperatures
// concurrently, waits for every sample, scores each candidate, and returns
// the one with the highest overall score. One successful sample is enough
// for the ensemble to succeed.
func (o *Orchestrator) RewriteEnsemble(ctx context.Context, req *providers.RewriteRequest, configs []providers.Config) *Result {
	primary := providers.PrimaryProvider(configs)
	if primary == nil {
		return &Result{
			Success: false,
			Error:   errors.New(errors.KindConfiguration, "", "no provider configured").UserMessage(),
		}
	}

	adapter, err := o.adapterFor(*primary)
	if err != nil {
		return &Result{
			Success: false,
			Error:   userMessage(err),
		}
	}

	samples := make([]ensembleSample, len(ensembleTemperatures))

	var wg sync.WaitGroup
	for i, temp := range ensembleTemperatures {
		wg.Add(1)
		go func(i int, temp float64) {
			defer wg.Done()
			samples[i] = o.sampleOnce(ctx, adapter, req, temp)
		}(i, temp)
	}
	wg.Wait()

	best := -1
	for i, sample := range samples {
		if sample.err != nil {
			continue
		}
		if best < 0 || sample.total > samples[best].total {
			best = i
		}
	}

	if best < 0 {
		// Individual sample failures are swallowed here; only the
		// aggregate surfaces.
		return &Result{
			Success: false,
			Error:   errors.New(errors.KindAllProvidersFailed, adapter.Name(), "all variants failed").UserMessage(),
		}
	}

	return samples[best].result
}

func (o *Orchestrator) sampleOnce(ctx context.Context, adapter providers.Adapter, req *providers.RewriteRequest, temp float64) ensembleSample {
	sampleReq := *req
	sampleReq.Temperature = &temp

	resp, err := adapter.RewritePrompt(ctx, &sampleReq)
	if err != nil {
		return ensembleSample{err: err}
	}

	result := resultFrom(resp.Text, req.OriginalPrompt, adapter.Name())
	evaluation := golden.Evaluate(result.RewrittenPrompt)
	return ensembleSample{result: result, total: evaluation.Golden.Total()}
}
