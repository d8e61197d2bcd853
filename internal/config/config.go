package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	API struct {
		JWTSecret     string `mapstructure:"jwt_secret"`
		AdminLogin    string `mapstructure:"admin_login"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"api"`

	Dialog struct {
		TTLHours int `mapstructure:"ttl_hours"`
	} `mapstructure:"dialog"`
}

func Load(path string) (Config, error) {
	// .env локально, в проде переменные приходят из окружения
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	if tok := v.GetString("TELEGRAM_TOKEN"); tok != "" {
		c.Telegram.Token = tok
	}
	if dsn := v.GetString("POSTGRES_DSN"); dsn != "" {
		c.Postgres.DSN = dsn
	}

	// без токена бот бесполезен — падаем сразу
	if c.Telegram.Token == "" {
		return c, fmt.Errorf("telegram token is not set (telegram.token / APP_TELEGRAM_TOKEN)")
	}
	if c.Dialog.TTLHours <= 0 {
		c.Dialog.TTLHours = 24
	}
	return c, nil
}
