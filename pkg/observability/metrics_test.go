package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(op domain.Operation, err error) *domain.ValidationEvent {
	return &domain.ValidationEvent{Timestamp: time.Now(), Op: op, Subject: "quickstart", Err: err}
}

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnValidate(ctx, event(domain.OpValidateCollection, nil))
	hooks.OnValidate(ctx, event(domain.OpValidateCollection, domain.Errorf(domain.ErrType, "x", nil, "bad")))
	hooks.OnValidate(ctx, event(domain.OpGetField, domain.Errorf(domain.ErrValue, "s1", nil, "none")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("validate_collection", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("validate_collection", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("validate_collection", "type")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("get_field", "value")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.Record(event(domain.OpGetFields, nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `conform_validations_total{op="get_fields",result="ok"} 1`)
}

func TestChain_AuditHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	counting := domain.ValidationHooks{
		OnValidate: func(context.Context, *domain.ValidationEvent) { calls++ },
	}

	hooks := Chain(counting, AuditHooks(logger), domain.ValidationHooks{})
	hooks.OnValidate(context.Background(), event(domain.OpValidateImageSample, nil))
	hooks.OnValidate(context.Background(), event(domain.OpValidateImageSample, domain.Errorf(domain.ErrMediaType, "s1", nil, "video")))
	hooks.OnValidate(context.Background(), event(domain.OpValidateImageSample, errors.New("boom")))

	assert.Equal(t, 3, calls)
	assert.Contains(t, buf.String(), "kind=media_type")
	assert.Contains(t, buf.String(), "kind=internal")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("validation failed")))
}
