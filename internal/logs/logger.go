package logs

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stdout)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init règle le niveau de log et branche Logstash si une adresse est fournie
func Init(level, logstashAddr string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("niveau de log invalide %q: %w", level, err)
	}
	logger.SetLevel(lvl)

	if logstashAddr == "" {
		return nil
	}

	conn, err := net.Dial("tcp", logstashAddr)
	if err != nil {
		return fmt.Errorf("connexion logstash: %w", err)
	}
	logger.AddHook(logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": "post-planner"})))
	return nil
}

// SetOutput redirige les logs (utilisé par les tests)
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
}

// Logger expose le logger sous-jacent pour les intégrations (gorm, gin)
func Logger() *logrus.Logger {
	return logger
}

// LogJSON écrit une entrée structurée. level vaut "DEBUG", "INFO", "WARN", "ERROR" ou "FATAL"
func LogJSON(level, message string, fields map[string]interface{}) {
	logger.WithFields(logrus.Fields(fields)).Log(parseSeverity(level), message)
}

func parseSeverity(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "FATAL":
		// Log ne quitte pas le process, contrairement à Fatal
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
