package logger

import (
	"log"
	"os"
)

var (
	InfoLogger  = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	logFile     *os.File
)

// Init points the loggers at logFilePath. Before Init (and when opening
// the file fails) both loggers write to stderr.
func Init(logFilePath string) error {
	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	InfoLogger.SetOutput(logFile)
	ErrorLogger.SetOutput(logFile)
	return nil
}

// RotateLog truncates the current log file and starts fresh.
func RotateLog(logFilePath string) error {
	if logFile != nil {
		logFile.Close()
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	InfoLogger.SetOutput(logFile)
	ErrorLogger.SetOutput(logFile)
	return nil
}

// Cleanup closes the log file when the application is done with it.
func Cleanup() {
	if logFile != nil {
		logFile.Close()
	}
}

// Info logs an informational message.
func Info(v ...interface{}) {
	InfoLogger.Println(v...)
}

// Error logs an error message.
func Error(v ...interface{}) {
	ErrorLogger.Println(v...)
}
