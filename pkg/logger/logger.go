package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"tradeflow/conf"
)

// 基于zap的日志封装，支持console和文件双输出，文件由lumberjack负责滚动

var (
	log  *zap.Logger
	once sync.Once
)

// Init 根据配置初始化全局logger，需要在进程启动时调用一次
func Init(cfg conf.LogConfig) {
	once.Do(func() {
		log = build(cfg)
	})
}

func build(cfg conf.LogConfig) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if cfg.FileName != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

// get 未调用Init时退回console logger，保证测试里也能输出
func get() *zap.Logger {
	once.Do(func() {
		log = build(conf.LogConfig{Console: true})
	})
	return log
}

// Pair 构造一个结构化字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Info(msg string, fields ...zap.Field) {
	get().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	get().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	get().Fatal(msg, fields...)
}

func Infof(format string, args ...interface{}) {
	get().Sugar().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	get().Sugar().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	get().Sugar().Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	get().Sugar().Fatalf(format, args...)
}

// Sync 进程退出前刷盘
func Sync() {
	_ = get().Sync()
}
