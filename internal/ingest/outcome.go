package ingest

import (
	"context"

	"github.com/hlzx-cpu/VEX-rankings/internal/client"
)

// fetchOutcome classifies one sub-resource fetch so the skip policy in
// the cycle loops is an explicit decision rather than error-type checks
// scattered over every call site.
type fetchOutcome int

const (
	fetchOK fetchOutcome = iota
	fetchNotFound
	fetchTransient
	fetchAborted
)

func classifyFetch(ctx context.Context, err error) fetchOutcome {
	switch {
	case err == nil:
		return fetchOK
	case ctx.Err() != nil:
		return fetchAborted
	case client.IsNotFound(err):
		return fetchNotFound
	default:
		return fetchTransient
	}
}
