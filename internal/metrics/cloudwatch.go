package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	cloudwatchNamespace      = "InnoPilot/API"
	cloudwatchTimeoutSeconds = 5
)

// putMetricDataAPI is the subset of the CloudWatch client we use
type putMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchClient wraps the CloudWatch client for custom generation metrics
type CloudWatchClient struct {
	client      putMetricDataAPI
	enabled     bool
	environment string
}

// NewCloudWatchClient creates a CloudWatch metrics client.
// It is only enabled in production; AWS config errors disable it instead of failing startup.
func NewCloudWatchClient(ctx context.Context, environment string) *CloudWatchClient {
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &CloudWatchClient{enabled: false, environment: environment}
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &CloudWatchClient{enabled: false, environment: environment}
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", cloudwatchNamespace)

	return &CloudWatchClient{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}
}

// IsEnabled returns whether metrics are sent to CloudWatch
func (m *CloudWatchClient) IsEnabled() bool {
	return m != nil && m.enabled && m.client != nil
}

// RecordGeneration sends generation duration, outcome and token usage in the background
func (m *CloudWatchClient) RecordGeneration(g Generation) {
	if !m.IsEnabled() {
		return
	}

	data := m.generationMetricData(g, time.Now())

	go func() {
		if err := m.putMetricData(data); err != nil {
			log.Printf("Failed to record generation metrics: %v", err)
		}
	}()
}

// generationMetricData builds the datums for one generation
func (m *CloudWatchClient) generationMetricData(g Generation, now time.Time) []types.MetricDatum {
	dimensions := []types.Dimension{
		{Name: aws.String("Strategy"), Value: aws.String(g.Strategy)},
		{Name: aws.String("Provider"), Value: aws.String(g.Provider)},
		{Name: aws.String("Environment"), Value: aws.String(m.environment)},
	}

	datum := func(name string, value float64, unit types.StandardUnit) types.MetricDatum {
		return types.MetricDatum{
			MetricName: aws.String(name),
			Value:      aws.Float64(value),
			Unit:       unit,
			Timestamp:  aws.Time(now),
			Dimensions: dimensions,
		}
	}

	data := []types.MetricDatum{
		datum("GenerationDuration", float64(g.Duration.Milliseconds()), types.StandardUnitMilliseconds),
	}

	if !g.Success {
		return append(data, datum("GenerationErrors", 1, types.StandardUnitCount))
	}

	data = append(data, datum("Generations", 1, types.StandardUnitCount))
	if g.InputTokens > 0 {
		data = append(data, datum("LLMTokens/Input", float64(g.InputTokens), types.StandardUnitCount))
	}
	if g.OutputTokens > 0 {
		data = append(data, datum("LLMTokens/Output", float64(g.OutputTokens), types.StandardUnitCount))
	}
	return data
}

// putMetricData sends datums to CloudWatch with its own timeout
func (m *CloudWatchClient) putMetricData(data []types.MetricDatum) error {
	ctx, cancel := context.WithTimeout(context.Background(), cloudwatchTimeoutSeconds*time.Second)
	defer cancel()

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(cloudwatchNamespace),
		MetricData: data,
	})
	return err
}
