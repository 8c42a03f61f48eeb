package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig_NewLogger(t *testing.T) {
	conf, err := FromFile("./testdata/logger.yml")
	require.NoError(t, err)
	require.NotNil(t, conf)
	logger, err := conf.BuildLogger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Equal(t, "json", conf.Logger.Encoding)
	assert.Equal(t, []string{"stdout"}, conf.Logger.OutputPaths)
	assert.Equal(t, []string{"stderr"}, conf.Logger.ErrorOutputPaths)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestConfig_NewLoggerDefaults(t *testing.T) {
	logger, err := Default().BuildLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
