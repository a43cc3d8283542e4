package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for a remote model provider.
	FieldProvider = "provider"
	// FieldModel is the structured log field key for a remote model identifier.
	FieldModel = "model"
	// FieldJobID identifies the job an evaluation runs against.
	FieldJobID = "job_id"
	// FieldApplicationID identifies the evaluated application.
	FieldApplicationID = "application_id"
	// FieldStage names the pipeline stage emitting the entry.
	FieldStage = "stage"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes a remote model provider.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches provider fields to logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// EvaluationFields identifies one application's pipeline run.
func EvaluationFields(jobID, applicationID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJobID, Value: jobID},
		StringField{Key: FieldApplicationID, Value: applicationID},
	)
}

// ForEvaluation returns a logger scoped to one application's pipeline run.
func ForEvaluation(logger *zap.Logger, jobID, applicationID string) *zap.Logger {
	return WithFields(logger, EvaluationFields(jobID, applicationID)...)
}
