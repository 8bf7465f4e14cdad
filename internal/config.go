package internal

import "time"

type Config struct {
	Host string `env:"HOST,required=true"`
	Port int    `env:"PORT,required=true"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`

	FrontendURL          string `env:"FRONTEND_URL,required=true"`
	ConnectionBufferSize int    `env:"CONNECTION_BUFFER_SIZE,required=true"`
	MaxContentLength     int    `env:"MAX_CONTENT_LENGTH,required=true"`

	PushWorkers     int           `env:"PUSH_WORKERS,required=true"`
	PushTimeout     time.Duration `env:"PUSH_TIMEOUT,required=true"`
	PushTTLSeconds  int           `env:"PUSH_TTL_SECONDS,required=true"`
	PushSubscriber  string        `env:"PUSH_SUBSCRIBER,required=true"`
	VapidPublicKey  string        `env:"VAPID_PUBLIC_KEY,required=true"`
	VapidPrivateKey string        `env:"VAPID_PRIVATE_KEY,required=true"`

	AuthTokenSecret   string        `env:"AUTH_TOKEN_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	StoreGCInterval time.Duration `env:"STORE_GC_INTERVAL,required=true"`

	DebugPort int `env:"DEBUG_PORT"`
}
