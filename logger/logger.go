package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the process-wide logger: text lines to stdout and to a
// size-rotated file.
func Init(level string, file string) error {
	parsedLevel, err := logrus.ParseLevel(level)

	if err != nil {
		return err
	}

	logrus.SetLevel(parsedLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}))

	return nil
}
