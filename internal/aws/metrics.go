package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsEmitter publishes count metrics to CloudWatch.
type MetricsEmitter struct {
	CloudWatch CloudWatchAPI
	Namespace  string
}

func NewMetricsEmitter(client CloudWatchAPI, namespace string) *MetricsEmitter {
	return &MetricsEmitter{CloudWatch: client, Namespace: namespace}
}

// Count emits a single count datapoint with optional dimensions.
func (m *MetricsEmitter) Count(ctx context.Context, name string, dims map[string]string) error {
	if m == nil || m.CloudWatch == nil {
		return nil
	}
	datum := cwtypes.MetricDatum{
		MetricName: &name,
		Value:      sdkaws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
	}
	for k, v := range dims {
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{
			Name:  sdkaws.String(k),
			Value: sdkaws.String(v),
		})
	}

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &m.Namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
