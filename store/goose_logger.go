package store

import "log"

// gooseLogger routes goose's migration output to the application log.
type gooseLogger struct {
	l *log.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.logger().Printf("goose: "+format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger().Fatalf("goose: "+format, v...)
}

func (g gooseLogger) logger() *log.Logger {
	if g.l == nil {
		return log.Default()
	}
	return g.l
}
