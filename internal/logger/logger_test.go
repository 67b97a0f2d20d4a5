package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{level: "debug", want: logrus.DebugLevel},
		{level: "WARN", want: logrus.WarnLevel},
		{level: "loud", want: logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := Setup(tt.level)
			assert.Equal(t, tt.want, log.GetLevel())
			assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
		})
	}
}
