package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold applies when NewGormLogger gets a zero threshold.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// GormLogger sends gorm's output to zap. Queries log at debug, queries slower
// than the threshold at warn and failed queries at error. A missing row is
// not a failure: repositories turn it into a not-found error themselves.
//
// When the query context carries a request logger (see WithContext), its
// fields are attached to every entry.
type GormLogger struct {
	logger        *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

func NewGormLogger(l *zap.Logger, slowThreshold time.Duration) *GormLogger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowQueryThreshold
	}
	return &GormLogger{
		logger:        l.Named("gorm"),
		level:         gormLevel(l),
		slowThreshold: slowThreshold,
	}
}

// gormLevel mirrors the zap level so that SQL tracing only runs when its
// entries would be written.
func gormLevel(l *zap.Logger) gormlogger.LogLevel {
	switch {
	case l.Core().Enabled(zap.DebugLevel):
		return gormlogger.Info
	case l.Core().Enabled(zap.WarnLevel):
		return gormlogger.Warn
	case l.Core().Enabled(zap.ErrorLevel):
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.from(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.from(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.from(ctx).Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.from(ctx).Error("query failed", zap.Error(err), zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows), zap.String("sql", sql))
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.from(ctx).Warn("slow query", zap.Duration("elapsed", elapsed), zap.Duration("threshold", l.slowThreshold),
			zap.Int64("rows", rows), zap.String("sql", sql))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.from(ctx).Debug("query", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}

func (l *GormLogger) from(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.logger
	}
	if scoped, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && scoped != nil {
		return scoped.Named("gorm")
	}
	return l.logger
}
