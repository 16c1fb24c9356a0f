package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(
	_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options),
) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func metricNames(data []types.MetricDatum) []string {
	names := make([]string, 0, len(data))
	for _, d := range data {
		names = append(names, aws.ToString(d.MetricName))
	}
	return names
}

func TestNewCloudWatchClient_DisabledOutsideProduction(t *testing.T) {
	client := NewCloudWatchClient(context.Background(), "development")
	assert.False(t, client.IsEnabled())

	// Must not panic when disabled
	client.RecordGeneration(Generation{Strategy: "zero-shot"})
}

func TestCloudWatchClient_NilIsDisabled(t *testing.T) {
	var client *CloudWatchClient
	assert.False(t, client.IsEnabled())
	client.RecordGeneration(Generation{})
}

func TestCloudWatchClient_GenerationMetricData(t *testing.T) {
	client := &CloudWatchClient{enabled: true, environment: "production"}
	now := time.Now()

	success := client.generationMetricData(Generation{
		Strategy:     "dynamic",
		Provider:     "gemini",
		Duration:     1500 * time.Millisecond,
		Success:      true,
		InputTokens:  10,
		OutputTokens: 20,
	}, now)
	assert.Equal(t, []string{"GenerationDuration", "Generations", "LLMTokens/Input", "LLMTokens/Output"}, metricNames(success))
	assert.Equal(t, 1500.0, aws.ToFloat64(success[0].Value))
	require.Len(t, success[0].Dimensions, 3)
	assert.Equal(t, "dynamic", aws.ToString(success[0].Dimensions[0].Value))

	failure := client.generationMetricData(Generation{Strategy: "cot", Provider: "openai", Success: false}, now)
	assert.Equal(t, []string{"GenerationDuration", "GenerationErrors"}, metricNames(failure))
}

func TestCloudWatchClient_PutMetricData(t *testing.T) {
	fake := &fakeCloudWatch{}
	client := &CloudWatchClient{client: fake, enabled: true, environment: "production"}

	data := client.generationMetricData(Generation{Strategy: "zero-shot", Provider: "gemini", Success: true}, time.Now())
	require.NoError(t, client.putMetricData(data))
	require.Len(t, fake.inputs, 1)
	assert.Equal(t, "InnoPilot/API", aws.ToString(fake.inputs[0].Namespace))
	assert.Len(t, fake.inputs[0].MetricData, len(data))

	fake.err = errors.New("throttled")
	assert.Error(t, client.putMetricData(data))
}

func TestRecorder_RecordGenerationUpdatesPrometheus(t *testing.T) {
	recorder := NewRecorder(nil)

	before := testutil.ToFloat64(GenerationTotal.WithLabelValues("one-shot", "mock", "error"))
	recorder.RecordGeneration(context.Background(), Generation{
		Strategy: "one-shot",
		Provider: "mock",
		Model:    "mock-model",
		Duration: time.Second,
		Success:  false,
	})
	after := testutil.ToFloat64(GenerationTotal.WithLabelValues("one-shot", "mock", "error"))
	assert.Equal(t, before+1, after)

	tokensBefore := testutil.ToFloat64(LLMTokensUsed.WithLabelValues("mock", "mock-model", "output"))
	recorder.RecordGeneration(context.Background(), Generation{
		Strategy:     "one-shot",
		Provider:     "mock",
		Model:        "mock-model",
		Success:      true,
		OutputTokens: 7,
	})
	assert.Equal(t, tokensBefore+7, testutil.ToFloat64(LLMTokensUsed.WithLabelValues("mock", "mock-model", "output")))
}
