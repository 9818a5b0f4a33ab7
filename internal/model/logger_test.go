package model

import (
	"io"
	"testing"

	"github.com/apex/log"
)

func TestDiscardLoggerWorksAsIntended(t *testing.T) {
	logger := DiscardLogger
	logger.Debug("foo")
	logger.Debugf("%s", "foo")
	logger.Info("foo")
	logger.Infof("%s", "foo")
	logger.Warn("foo")
	logger.Warnf("%s", "foo")
}

func TestErrorToStringOrOK(t *testing.T) {
	t.Run("on success", func(t *testing.T) {
		expectedResult := ErrorToStringOrOK(nil)
		if expectedResult != "ok" {
			t.Fatal("expected ok")
		}
	})

	t.Run("on failure", func(t *testing.T) {
		err := io.EOF
		expectedResult := ErrorToStringOrOK(err)
		if expectedResult != err.Error() {
			t.Fatal("not the result we expected", expectedResult)
		}
	})
}

func TestValidLoggerOrDefault(t *testing.T) {
	t.Run("with a nil logger", func(t *testing.T) {
		if out := ValidLoggerOrDefault(nil); out != DiscardLogger {
			t.Fatal("expected the discard logger")
		}
	})

	t.Run("with a valid logger", func(t *testing.T) {
		if out := ValidLoggerOrDefault(log.Log); out != log.Log {
			t.Fatal("expected the logger we passed in")
		}
	})
}
