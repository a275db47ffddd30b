package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
	colorTime  = "\x1b[38;5;107m"
	colorName  = "\x1b[38;5;208m"
	colorKey   = "\x1b[38;5;109m"
	colorWarn  = "\x1b[38;5;179m"
	colorError = "\x1b[38;5;167m"
)

var pool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder
// Format: "13:04:35  WARN  packager  Source document missing  entry=fr-FR/a.sdlxliff"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	color           bool
	context         []zapcore.Field
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		color:   color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		color:   enc.color,
		context: append([]zapcore.Field(nil), enc.context...),
	}
}

// AddString and friends are routed through With(); keep the context fields so
// loggers built with .With(...) still print them.
func (enc *minimalEncoder) addContext(f zapcore.Field) {
	enc.context = append(enc.context, f)
}

func (enc *minimalEncoder) AddString(key, value string) { enc.addContext(zap.String(key, value)) }
func (enc *minimalEncoder) AddInt64(key string, value int64) {
	enc.addContext(zap.Int64(key, value))
}
func (enc *minimalEncoder) AddUint64(key string, value uint64) {
	enc.addContext(zap.Uint64(key, value))
}
func (enc *minimalEncoder) AddFloat64(key string, value float64) {
	enc.addContext(zap.Float64(key, value))
}
func (enc *minimalEncoder) AddBool(key string, value bool) { enc.addContext(zap.Bool(key, value)) }
func (enc *minimalEncoder) AddReflected(key string, value interface{}) error {
	enc.addContext(zap.Any(key, value))
	return nil
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := pool.Get()

	final.AppendString(enc.paint(colorTime, ent.Time.Format("15:04:05")))

	// Level: only show for WARN/ERROR and above
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorName, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	all := make([]zapcore.Field, 0, len(enc.context)+len(fields))
	all = append(all, enc.context...)
	all = append(all, fields...)
	if len(all) > 0 {
		final.AppendString("  ")
		final.AppendString(enc.fieldString(all))
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.WarnLevel:
		return enc.paint(colorBold+colorWarn, "WARN")
	default:
		return enc.paint(colorBold+colorError, level.CapitalString())
	}
}

// fieldString renders every field as key=value, never dropping one.
// Field order follows the call site; values of compound fields are printed
// with their keys sorted so output is stable.
func (enc *minimalEncoder) fieldString(fields []zapcore.Field) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		m := zapcore.NewMapObjectEncoder()
		field.AddTo(m)
		if len(m.Fields) == 0 {
			continue
		}
		keys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, enc.paint(colorKey, k)+"="+fmt.Sprint(m.Fields[k]))
		}
	}
	return strings.Join(parts, " ")
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color {
		return s
	}
	return color + s + colorReset
}
