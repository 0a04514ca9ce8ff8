package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRequest is one entry of testdata/requests.json: a raw request body
// and the outcome kind it must produce.
type mockRequest struct {
	Name       string          `json:"name"`
	Request    json.RawMessage `json:"request"`
	WantKind   string          `json:"want_kind"`
	WantError  string          `json:"want_error_kind,omitempty"`
	WantGround bool            `json:"want_ground,omitempty"`
}

func loadMockRequests(t *testing.T) []mockRequest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "requests.json"))
	require.NoError(t, err)

	var reqs []mockRequest
	require.NoError(t, json.Unmarshal(data, &reqs))
	require.NotEmpty(t, reqs)
	return reqs
}

func TestSimulationTransformer_WithMockRequests(t *testing.T) {
	tfm, _ := newTransformer(nil)

	for _, mr := range loadMockRequests(t) {
		t.Run(mr.Name, func(t *testing.T) {
			ev, err := tfm.Transform(context.Background(), domain.RawEvent{Value: mr.Request})
			require.NoError(t, err)

			assert.Equal(t, mr.WantKind, ev.Headers["outcome"])
			rec := decodeRecord(t, ev)

			if mr.WantKind == "error" {
				assert.False(t, rec.Outcome.OK)
				assert.Equal(t, mr.WantError, ev.Headers["error_kind"])
				return
			}

			require.True(t, rec.Outcome.OK, rec.Outcome.Error)
			require.NotNil(t, rec.Outcome.ImpactOutcome)
			assert.Equal(t, mr.WantGround, rec.Outcome.Results.Mode == domain.ModeGround)
			assert.Len(t, rec.Outcome.Timeline, 73)
			assert.NotEmpty(t, rec.Outcome.Rings)
		})
	}
}
