// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{" WARN ", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"chatty", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInterceptorLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)

	InterceptorLogger(l).Log(context.Background(), logging.LevelWarn, "finished call", "grpc.method", "Check", "grpc.code", "OK")

	out := buf.String()
	for _, want := range []string{`"level":"warning"`, `"msg":"finished call"`, `"grpc.method":"Check"`, `"grpc.code":"OK"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %s missing %s", out, want)
		}
	}
}

func TestScope(t *testing.T) {
	scope := NewScope(context.Background(), "tick.test")
	defer scope.Finish()

	if scope.Ctx == nil || scope.Log == nil {
		t.Fatal("NewScope() returned an incomplete scope")
	}
	if scope.Log.Data[traceIdLogField] != scope.TraceID {
		t.Errorf("log traceID = %v, expected %s", scope.Log.Data[traceIdLogField], scope.TraceID)
	}

	// none of these may panic on a no-op tracer
	scope.SetAttributes("players", 3)
	scope.SetAttributes("theme", "neon")
	scope.TraceEvent("rolled")
	scope.TraceError(errors.New("boom"))

	child := scope.NewChildScope("tick.test.child")
	defer child.Finish()
	if child.TraceID != scope.TraceID {
		t.Errorf("child TraceID = %s, expected %s", child.TraceID, scope.TraceID)
	}

	scope.SetLogger(logrus.NewEntry(logrus.New()))
	if scope.Log.Data[traceIdLogField] != scope.TraceID {
		t.Error("SetLogger() dropped the traceID field")
	}
}

func TestNewTracerProvider(t *testing.T) {
	tp, err := NewTracerProvider("runner-economy", "test", "", 1)
	if err != nil {
		t.Fatalf("NewTracerProvider() error = %v", err)
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	if _, err := NewTracerProvider("runner-economy", "test", "not a url", 1); err == nil {
		t.Error("NewTracerProvider() with a bad endpoint expected error")
	}
}
