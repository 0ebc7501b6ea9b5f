package util

import (
	"io"
	"log"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

var logger *log.Logger

// InitLogger sets up daily-rotated file logging alongside stdout. Log falls
// back to the standard logger until this has run, so tests need no setup.
func InitLogger() {
	path := GoDotEnvVariable("LOG_PATH")
	if path == "" {
		path = "logs/citypark"
	}
	writer, err := rotatelogs.New(
		path+".%Y%m%d.log",
		rotatelogs.WithLinkName(path+".log"),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Println("File logging unavailable, using stdout only:", err)
		logger = log.New(os.Stdout, "", log.LstdFlags)
		return
	}
	logger = log.New(io.MultiWriter(os.Stdout, writer), "", log.LstdFlags)
}

// Log is...
func Log(v ...interface{}) {
	if logger == nil {
		log.Println(v...)
		return
	}
	logger.Println(v...)
}
