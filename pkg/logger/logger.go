package logger

import (
	"io"
	"os"
	"time"

	"VideoTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init 配置 logrus 与 hlog，同时输出到 stdout 和按大小轮转的日志文件
func Init(c config.Log) io.Closer {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if c.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}

	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	logrus.SetOutput(out)
	logrus.SetLevel(level)

	hlog.SetOutput(out)
	hlog.SetLevel(hlogLevel(level))
	return closer
}

func hlogLevel(l logrus.Level) hlog.Level {
	switch l {
	case logrus.TraceLevel:
		return hlog.LevelTrace
	case logrus.DebugLevel:
		return hlog.LevelDebug
	case logrus.WarnLevel:
		return hlog.LevelWarn
	case logrus.ErrorLevel:
		return hlog.LevelError
	case logrus.FatalLevel, logrus.PanicLevel:
		return hlog.LevelFatal
	default:
		return hlog.LevelInfo
	}
}
