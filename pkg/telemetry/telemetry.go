package telemetry

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otlplog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/denysvitali/webtree/internal/models"
	"github.com/denysvitali/webtree/pkg/config"
)

// ServiceName identifies spans and log records emitted by this tool
const ServiceName = "webtree"

// Initialize sets up OpenTelemetry tracing and logging using autoexport.
// The exporter is picked from the standard OTEL_* environment variables.
// The returned cleanup flushes both providers.
func Initialize(cfg config.TelemetryConfig, version string, logger *logrus.Logger) (func(), error) {
	if cfg.Endpoint != "" && os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		if err := os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Endpoint); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, err
	}

	spanExporter, err := autoexport.NewSpanExporter(ctx)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	var lp *sdklog.LoggerProvider
	logExporter, err := autoexport.NewLogExporter(ctx)
	if err != nil {
		logger.Warnf("Failed to create log exporter: %v", err)
	} else {
		lp = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
			sdklog.WithResource(res),
		)
		global.SetLoggerProvider(lp)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			logger.Warnf("Error shutting down tracer provider: %v", err)
		}
		if lp != nil {
			if err := lp.Shutdown(ctx); err != nil {
				logger.Warnf("Error shutting down log provider: %v", err)
			}
		}
	}, nil
}

// ReportJSON records data as a span and as a debug log entry
func ReportJSON(ctx context.Context, logger *logrus.Logger, operationName string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		logger.Errorf("Failed to marshal data to JSON: %v", err)
		return
	}

	reportInTrace(ctx, operationName, data, jsonData)
	reportInLogs(ctx, logger, operationName, data, jsonData)
}

// reportInTrace opens a span carrying the payload. Top-level scalar fields
// also become individual attributes.
func reportInTrace(ctx context.Context, operationName string, data interface{}, jsonData []byte) {
	_, span := otel.Tracer(ServiceName).Start(ctx, operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("json.data", string(jsonData)),
		attribute.String("data.type", getDataType(data)),
	)

	var fields map[string]interface{}
	if err := json.Unmarshal(jsonData, &fields); err != nil {
		return
	}
	for key, value := range fields {
		switch v := value.(type) {
		case string:
			span.SetAttributes(attribute.String("data."+key, v))
		case float64:
			span.SetAttributes(attribute.Float64("data."+key, v))
		case bool:
			span.SetAttributes(attribute.Bool("data."+key, v))
		}
	}
}

func reportInLogs(ctx context.Context, logger *logrus.Logger, operationName string, data interface{}, jsonData []byte) {
	logger.WithFields(logrus.Fields{
		"operation": operationName,
		"json_data": string(jsonData),
		"data_type": getDataType(data),
	}).Debug("JSON data reported")

	var record otlplog.Record
	now := time.Now()
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetSeverity(otlplog.SeverityDebug)
	record.SetSeverityText("DEBUG")
	record.SetBody(otlplog.StringValue(string(jsonData)))
	record.AddAttributes(
		otlplog.String("operation", operationName),
		otlplog.String("data_type", getDataType(data)),
	)
	global.GetLoggerProvider().Logger(ServiceName).Emit(ctx, record)
}

func getDataType(data interface{}) string {
	switch data.(type) {
	case models.GenerationSummary, *models.GenerationSummary:
		return "generation_summary"
	case models.PageResult, *models.PageResult:
		return "page_result"
	case map[string]interface{}:
		return "map"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case int, int32, int64:
		return "integer"
	case float32, float64:
		return "float"
	case bool:
		return "boolean"
	default:
		return "unknown"
	}
}
