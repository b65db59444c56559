package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gorecipes/internal/pkg/logger"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := logger.Wrap(zap.New(core))

	log.Debug("descartado", nil)
	log.Info("receita carregada", map[string]interface{}{"id": "butter-chicken"})
	log.Warn("fonte da API falhou", map[string]interface{}{"status": 404})
	log.Error("falha", errors.New("boom"))

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "receita carregada", entries[0].Message)
	assert.Equal(t, "butter-chicken", entries[0].ContextMap()["id"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}
