package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"eventkompass/config"
	"eventkompass/models"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseAllClosesEveryClient(t *testing.T) {
	var closed []string
	closeAll(nil, zap.NewNop())

	closeAll([]io.Closer{
		closerFunc(func() error { closed = append(closed, "grounded"); return nil }),
		closerFunc(func() error { closed = append(closed, "gemini"); return errors.New("already closed") }),
		closerFunc(func() error { closed = append(closed, "redis"); return nil }),
	}, zap.NewNop())

	assert.Equal(t, []string{"grounded", "gemini", "redis"}, closed)
}

func TestNewGatewayWithoutKeyHasNothingToClose(t *testing.T) {
	config.AppConfig.GeminiAPIKey = ""
	gw, closers := newGateway(context.Background(), models.LanguageDE, nil, zap.NewNop())

	assert.Nil(t, gw.Grounded)
	assert.Nil(t, gw.Classifier)
	assert.Empty(t, closers)
}

func TestNewGatewayReturnsClientsToClose(t *testing.T) {
	config.AppConfig.GeminiAPIKey = "test-key"
	config.AppConfig.STTProvider = "gemini"
	t.Cleanup(func() { config.AppConfig.GeminiAPIKey = "" })

	gw, closers := newGateway(context.Background(), models.LanguageDE, nil, zap.NewNop())

	assert.NotNil(t, gw.Grounded)
	assert.NotNil(t, gw.Classifier)
	assert.Len(t, closers, 2)
	closeAll(closers, zap.NewNop())
}
