package config

import (
	"go.uber.org/zap"
)

// InitLogger می‌سازد logger برنامه را؛ در production خروجی JSON است.
func InitLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
