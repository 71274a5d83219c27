package config

import "time"

// Config holds the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Storage     StorageConfig    `mapstructure:"storage"`
	Processing  ProcessingConfig `mapstructure:"processing"`
	Whisper     WhisperConfig    `mapstructure:"whisper"`
	FFmpeg      FFmpegConfig     `mapstructure:"ffmpeg"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// StorageConfig holds filesystem layout settings
type StorageConfig struct {
	DataPath  string `mapstructure:"data_path"`  // JSON snapshot of profiles/audios/clips
	UploadDir string `mapstructure:"upload_dir"` // uploaded source recordings
	CacheDir  string `mapstructure:"cache_dir"`  // extracted clip audio cache
}

// ProcessingConfig holds transcription pipeline settings
type ProcessingConfig struct {
	Workers      int `mapstructure:"workers"`
	MaxQueueSize int `mapstructure:"max_queue_size"`
}

// WhisperConfig holds transcription engine settings
type WhisperConfig struct {
	ModelPath string `mapstructure:"model_path"`
	Language  string `mapstructure:"language"` // "auto" for auto-detection
}

// FFmpegConfig holds external audio tool settings
type FFmpegConfig struct {
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	FFprobePath string        `mapstructure:"ffprobe_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
}
