package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	structuredZapEncodingConstant        = "json"
	consoleZapEncodingConstant           = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LoggerSettings describes the logger a factory should produce.
type LoggerSettings struct {
	Level  LogLevel
	Format LogFormat
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	levelMapping    map[LogLevel]zapcore.Level
	encodingMapping map[LogFormat]string
}

// NewLoggerFactory constructs a logger factory with the supported mappings.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{
		levelMapping: map[LogLevel]zapcore.Level{
			LogLevelDebug: zapcore.DebugLevel,
			LogLevelInfo:  zapcore.InfoLevel,
			LogLevelWarn:  zapcore.WarnLevel,
			LogLevelError: zapcore.ErrorLevel,
		},
		encodingMapping: map[LogFormat]string{
			LogFormatStructured: structuredZapEncodingConstant,
			LogFormatConsole:    consoleZapEncodingConstant,
		},
	}
}

// CreateLogger produces a zap.Logger honoring the requested settings.
func (factory *LoggerFactory) CreateLogger(settings LoggerSettings) (*zap.Logger, error) {
	zapLevel, levelSupported := factory.levelMapping[settings.Level]
	if !levelSupported {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, settings.Level)
	}

	zapEncoding, formatSupported := factory.encodingMapping[settings.Format]
	if !formatSupported {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, settings.Format)
	}

	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Level = zap.NewAtomicLevelAt(zapLevel)
	loggerConfiguration.Encoding = zapEncoding
	if settings.Format == LogFormatConsole {
		loggerConfiguration.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return loggerConfiguration.Build()
}
