package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type severityRecorder struct {
	values []string
}

func (r *severityRecorder) AppendString(v string) { r.values = append(r.values, v) }

func (r *severityRecorder) AppendBool(bool) {}
func (r *severityRecorder) AppendByteString([]byte) {}
func (r *severityRecorder) AppendComplex128(complex128) {}
func (r *severityRecorder) AppendComplex64(complex64) {}
func (r *severityRecorder) AppendFloat64(float64) {}
func (r *severityRecorder) AppendFloat32(float32) {}
func (r *severityRecorder) AppendInt(int) {}
func (r *severityRecorder) AppendInt64(int64) {}
func (r *severityRecorder) AppendInt32(int32) {}
func (r *severityRecorder) AppendInt16(int16) {}
func (r *severityRecorder) AppendInt8(int8) {}
func (r *severityRecorder) AppendUint(uint) {}
func (r *severityRecorder) AppendUint64(uint64) {}
func (r *severityRecorder) AppendUint32(uint32) {}
func (r *severityRecorder) AppendUint16(uint16) {}
func (r *severityRecorder) AppendUint8(uint8) {}
func (r *severityRecorder) AppendUintptr(uintptr) {}

func TestEncodeSeverity(t *testing.T) {
	rec := &severityRecorder{}
	for _, level := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.FatalLevel} {
		encodeSeverity(level, rec)
	}
	assert.Equal(t, []string{"DEBUG", "INFO", "WARNING", "ERROR", "EMERGENCY"}, rec.values)
}

func TestNewBuildsLoggerAtRequestedLevel(t *testing.T) {
	logger, err := New(true, false)
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(false, true)
	assert.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestSetLoggerRestores(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := SetLogger(zap.New(core))

	Logger().Info("hello")
	assert.Equal(t, 1, logs.Len())

	restore()
	Logger().Info("after restore")
	assert.Equal(t, 1, logs.Len())
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core)

	ctx := WithLogger(context.Background(), scoped)
	FromContext(ctx).Info("scoped")
	assert.Equal(t, 1, logs.Len())

	assert.Equal(t, Logger(), FromContext(context.Background()))
}
