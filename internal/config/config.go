package config

import (
	"go.uber.org/zap"
)

// NewLogger می‌توان logger production یا development انتخاب کرد
func NewLogger(env string) (*zap.Logger, error) {
	if env == EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
