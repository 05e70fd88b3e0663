package config

import "time"

const (
	// Backend call timeouts
	RequestTimeout   = 90 * time.Second
	TranslateTimeout = 30 * time.Second

	// Largest accepted attachment
	MaxAttachmentBytes = 10 << 20
)
