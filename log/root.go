package log

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"kselect/config"
)

var rootConfig *config.LogConfig

// Init installs the global zap logger. Output goes to a rotated file under
// cfg.Path, or to stderr when no path is configured.
func Init(cfg *config.LogConfig) {
	rootConfig = cfg

	Encoder := getEncoder()
	WriteSyncer := getWriteSyncer()
	LevelEnabler := getLevelEnabler()
	newCore := zapcore.NewTee(
		zapcore.NewCore(Encoder, WriteSyncer, LevelEnabler),
	)

	logger := zap.New(newCore, zap.AddCaller())
	zap.ReplaceGlobals(logger)
}

func Sync() {
	_ = zap.L().Sync()
}

func getEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(
		zapcore.EncoderConfig{
			TimeKey:          "ts",
			LevelKey:         "level",
			NameKey:          "logger",
			FunctionKey:      zapcore.OmitKey,
			MessageKey:       "msg",
			StacktraceKey:    "stacktrace",
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      cEncodeLevel,
			EncodeTime:       cEncodeTime,
			EncodeDuration:   zapcore.SecondsDurationEncoder,
			ConsoleSeparator: " ",
		})
}

func getWriteSyncer() zapcore.WriteSyncer {
	if rootConfig.Path == "" {
		return zapcore.Lock(os.Stderr)
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   filepath.Join(rootConfig.Path, rootConfig.File),
		MaxSize:    200,
		MaxBackups: 10,
		MaxAge:     30,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func getLevelEnabler() zapcore.Level {
	switch rootConfig.Level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func cEncodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(level.CapitalString())
}

func cEncodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05.000") + "]")
}
