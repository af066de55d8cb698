package telemetry

import (
	"context"
	"testing"
	"time"

	"skill-exchange/config"

	"github.com/stretchr/testify/assert"
)

func TestInitDisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), config.Config{})
	assert.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestEndpointsPreferSignalSpecificValues(t *testing.T) {
	traces, metrics := endpoints(config.TelemetryConfig{OTLPEndpoint: "collector:4317"})
	assert.Equal(t, "collector:4317", traces)
	assert.Equal(t, "collector:4317", metrics)

	traces, metrics = endpoints(config.TelemetryConfig{
		OTLPEndpoint:        "collector:4317",
		OTLPTracesEndpoint:  "traces:4317",
		OTLPMetricsEndpoint: "metrics:4317",
	})
	assert.Equal(t, "traces:4317", traces)
	assert.Equal(t, "metrics:4317", metrics)
}

func TestEnabled(t *testing.T) {
	assert.False(t, Enabled(config.TelemetryConfig{}))
	assert.True(t, Enabled(config.TelemetryConfig{OTLPMetricsEndpoint: "metrics:4317"}))
}

func TestInitHTTPExporters(t *testing.T) {
	cfg := config.Config{
		AppEnv: "test",
		Telemetry: config.TelemetryConfig{
			ServiceName:          "skill-exchange",
			OTLPEndpoint:         "localhost:4318",
			OTLPProtocol:         "http/protobuf",
			OTLPInsecure:         true,
			MetricExportInterval: time.Minute,
			ExportTimeout:        time.Second,
		},
	}

	shutdown, err := Init(context.Background(), cfg)
	assert.NoError(t, err)
	assert.NotNil(t, shutdown)
}
