package storage

import (
	"testing"

	"github.com/andresuchdata/reposia/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Enabled:   true,
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "reposia-snapshots",
	}
}

func TestNewMinioClient(t *testing.T) {
	client, err := NewMinioClient(validStorageConfig())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewMinioClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{
			name:    "missing endpoint",
			mutate:  func(c *config.StorageConfig) { c.Endpoint = "" },
			wantErr: "endpoint",
		},
		{
			name:    "missing access key",
			mutate:  func(c *config.StorageConfig) { c.AccessKey = "" },
			wantErr: "credentials",
		},
		{
			name:    "missing secret key",
			mutate:  func(c *config.StorageConfig) { c.SecretKey = "" },
			wantErr: "credentials",
		},
		{
			name:    "missing bucket",
			mutate:  func(c *config.StorageConfig) { c.Bucket = "" },
			wantErr: "bucket",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStorageConfig()
			tt.mutate(&cfg)
			_, err := NewMinioClient(cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
