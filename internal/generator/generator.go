package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/algrv/playground/internal/llm"
	"codeberg.org/algrv/playground/internal/logger"
	"codeberg.org/algrv/playground/internal/metrics"
)

// generation outcomes recorded in metrics
const (
	statusOK                  = "ok"
	statusPartial             = "partial"
	statusMissingCredential   = "missing_credential"
	statusUpstreamStatus      = "upstream_status"
	statusUpstreamUnreachable = "upstream_unreachable"
)

func New(client llm.ChatCompleter) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Model() string {
	return g.client.Model()
}

func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	resp, err := g.client.Complete(ctx, llm.CompletionRequest{Messages: buildMessages(req)})
	if err != nil {
		metrics.RecordGeneration(g.client.Model(), failureStatus(err), time.Since(start))
		return nil, fmt.Errorf("failed to generate component: %w", err)
	}

	jsx, css := extractCode(resp.Text)

	status := statusOK
	if jsx == "" || css == "" {
		status = statusPartial
		logger.FromContext(ctx).Warn("generation missing fenced block",
			"has_jsx", jsx != "",
			"has_css", css != "",
		)
	}

	metrics.RecordGeneration(g.client.Model(), status, time.Since(start))

	logger.FromContext(ctx).Debug("component generated",
		"model", resp.Model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)

	return &Result{JSX: jsx, CSS: css, Raw: resp.Text}, nil
}

func failureStatus(err error) string {
	if errors.Is(err, llm.ErrMissingCredential) {
		return statusMissingCredential
	}

	var upstreamErr *llm.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Kind == llm.UpstreamStatus {
		return statusUpstreamStatus
	}

	return statusUpstreamUnreachable
}
