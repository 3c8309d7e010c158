package common

import (
	"context"
	"encoding/json"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
)

// EchoLogrusLogger bridges the echo.Logger interface onto a logrus.Logger
// so the HTTP server logs through the same logger as the rest of the
// program.
type EchoLogrusLogger struct {
	*logrus.Logger
	Ctx context.Context
}

var commonLogger = &EchoLogrusLogger{
	Logger: logrus.StandardLogger(),
	Ctx:    context.Background(),
}

func Logger() *EchoLogrusLogger {
	return commonLogger
}

func toEchoLevel(level logrus.Level) log.Lvl {
	switch level {
	case logrus.DebugLevel:
		return log.DEBUG
	case logrus.InfoLevel:
		return log.INFO
	case logrus.WarnLevel:
		return log.WARN
	case logrus.ErrorLevel:
		return log.ERROR
	}

	return log.OFF
}

func (l *EchoLogrusLogger) entry() *logrus.Entry {
	e := l.Logger.WithContext(l.Ctx)
	if oid := OperationID(l.Ctx); oid != "" {
		e = e.WithField("operation_id", oid)
	}
	if eid := ExternalID(l.Ctx); eid != "" {
		e = e.WithField("external_id", eid)
	}
	return e
}

func marshalj(j log.JSON) string {
	b, err := json.Marshal(j)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (l *EchoLogrusLogger) Output() io.Writer {
	return l.Out
}

func (l *EchoLogrusLogger) SetOutput(w io.Writer) {
	// keep the global logrus configuration authoritative
}

func (l *EchoLogrusLogger) Level() log.Lvl {
	return toEchoLevel(l.Logger.Level)
}

func (l *EchoLogrusLogger) SetLevel(v log.Lvl) {
	// keep the global logrus configuration authoritative
}

func (l *EchoLogrusLogger) SetHeader(h string) {
}

func (l *EchoLogrusLogger) Prefix() string {
	return ""
}

func (l *EchoLogrusLogger) SetPrefix(p string) {
}

func (l *EchoLogrusLogger) Print(i ...interface{}) {
	l.entry().Print(i...)
}

func (l *EchoLogrusLogger) Printf(format string, args ...interface{}) {
	l.entry().Printf(format, args...)
}

func (l *EchoLogrusLogger) Printj(j log.JSON) {
	l.entry().Println(marshalj(j))
}

func (l *EchoLogrusLogger) Debug(i ...interface{}) {
	l.entry().Debug(i...)
}

func (l *EchoLogrusLogger) Debugf(format string, args ...interface{}) {
	l.entry().Debugf(format, args...)
}

func (l *EchoLogrusLogger) Debugj(j log.JSON) {
	l.entry().Debugln(marshalj(j))
}

func (l *EchoLogrusLogger) Info(i ...interface{}) {
	l.entry().Info(i...)
}

func (l *EchoLogrusLogger) Infof(format string, args ...interface{}) {
	l.entry().Infof(format, args...)
}

func (l *EchoLogrusLogger) Infoj(j log.JSON) {
	l.entry().Infoln(marshalj(j))
}

func (l *EchoLogrusLogger) Warn(i ...interface{}) {
	l.entry().Warn(i...)
}

func (l *EchoLogrusLogger) Warnf(format string, args ...interface{}) {
	l.entry().Warnf(format, args...)
}

func (l *EchoLogrusLogger) Warnj(j log.JSON) {
	l.entry().Warnln(marshalj(j))
}

func (l *EchoLogrusLogger) Error(i ...interface{}) {
	l.entry().Error(i...)
}

func (l *EchoLogrusLogger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}

func (l *EchoLogrusLogger) Errorj(j log.JSON) {
	l.entry().Errorln(marshalj(j))
}

func (l *EchoLogrusLogger) Fatal(i ...interface{}) {
	l.entry().Fatal(i...)
}

func (l *EchoLogrusLogger) Fatalf(format string, args ...interface{}) {
	l.entry().Fatalf(format, args...)
}

func (l *EchoLogrusLogger) Fatalj(j log.JSON) {
	l.entry().Fatalln(marshalj(j))
}

func (l *EchoLogrusLogger) Panic(i ...interface{}) {
	l.entry().Panic(i...)
}

func (l *EchoLogrusLogger) Panicf(format string, args ...interface{}) {
	l.entry().Panicf(format, args...)
}

func (l *EchoLogrusLogger) Panicj(j log.JSON) {
	l.entry().Panicln(marshalj(j))
}
