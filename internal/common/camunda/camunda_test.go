package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/internal/common/config"
	apperrors "finanzbot/internal/common/errors"
	"finanzbot/internal/common/logger"
	"finanzbot/internal/common/metrics"
	"finanzbot/internal/common/validation"
)

func testClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		RetryConfig: &RetryConfig{MaxRetries: maxRetries, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
	}}
}

func TestExecuteWithRetry_RecoversFromTransientError(t *testing.T) {
	calls := 0
	got, err := testClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("rpc error: code = Unavailable")
		}
		return "ok", nil
	}, "publish-message")

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_PermanentErrorIsNotRetried(t *testing.T) {
	calls := 0
	_, err := testClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("process not found")
	}, "create-instance")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExternalServiceError))
}

func TestExecuteWithRetry_TimeoutAfterRetries(t *testing.T) {
	calls := 0
	_, err := testClient(2).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("context deadline exceeded")
	}, "complete-job")

	assert.Equal(t, 3, calls)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTimeout))
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableZeebeError(errors.New("Service UNAVAILABLE")))
	assert.False(t, isRetryableZeebeError(errors.New("permission denied")))
}

func TestClientConfigFrom(t *testing.T) {
	cc := ClientConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", Plaintext: true, Timeout: 1500, RequestTimeout: 200})
	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.True(t, cc.UsePlaintextConnection)
	assert.Equal(t, 1500*time.Millisecond, cc.ConnectionTimeout)
	assert.Equal(t, 200*time.Millisecond, cc.RequestTimeout)
}

func TestInstrument(t *testing.T) {
	const taskType = "instrument-test"
	var seen int64
	h := Instrument(taskType, func(_ worker.JobClient, job entities.Job) {
		seen = job.Key
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	}, nil)

	h(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42}})

	assert.Equal(t, int64(42), seen)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestValidateInput_PassesValidJobs(t *testing.T) {
	schema, err := validation.Compile(`{"type":"object","required":["message"]}`)
	require.NoError(t, err)

	called := false
	h := ValidateInput(schema, func(worker.JobClient, entities.Job) { called = true },
		apperrors.NewErrorHandler(logger.NewNoOpLogger()))

	h(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 7, Variables: `{"message":"hola"}`}})
	assert.True(t, called)
}
