package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port             int
	JWTKey           string
	Debug            bool
	RenewalNoticeDay int // 订阅到期前多少天提醒续费
}

// LoadConfig 从环境变量加载配置
func LoadConfig() *Config {
	// .env不存在时忽略，直接读环境变量
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	noticeDays, _ := strconv.Atoi(getEnv("RENEWAL_NOTICE_DAYS", "7"))

	return &Config{
		Port:             port,
		JWTKey:           getEnv("JWT_KEY", "your-secret-key"), // 实际环境应替换为安全密钥
		Debug:            getEnv("GIN_MODE", "debug") == "debug",
		RenewalNoticeDay: noticeDays,
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
