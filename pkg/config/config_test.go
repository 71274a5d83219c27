package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	assert.Equal(t, "0.0.0.0", viper.GetString("server.host"))
	assert.Equal(t, 8080, viper.GetInt("server.port"))
	assert.Equal(t, "./data/data.json", viper.GetString("storage.data_path"))
	assert.Equal(t, 2, viper.GetInt("processing.workers"))
	assert.Equal(t, "auto", viper.GetString("whisper.language"))
	assert.Equal(t, 5*time.Minute, viper.GetDuration("ffmpeg.timeout"))
	assert.Equal(t, int64(256*1024*1024), viper.GetInt64("server.max_upload_bytes"))
}

func TestValidateAutoCorrectsWorkers(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.Set("processing.workers", -1)
	viper.Set("processing.max_queue_size", 0)

	require.NoError(t, validate())
	assert.Equal(t, 2, viper.GetInt("processing.workers"))
	assert.Equal(t, 100, viper.GetInt("processing.max_queue_size"))
}

func TestValidateRejectsBadPort(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.Set("server.port", 0)

	assert.Error(t, validate())
}

func TestValidateRejectsEmptyDataPath(t *testing.T) {
	viper.Reset()
	setDefaults()
	viper.Set("storage.data_path", "")

	assert.Error(t, validate())
}

func TestConfigStructValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Storage.DataPath = "./data/data.json"
	cfg.Processing.Workers = 0
	cfg.Processing.MaxQueueSize = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Processing.Workers)
	assert.Equal(t, 100, cfg.Processing.MaxQueueSize)

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestUnmarshalConfig(t *testing.T) {
	viper.Reset()
	setDefaults()

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "./models/ggml-small.bin", cfg.Whisper.ModelPath)
}
