package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"bollwerkBot/internal/domain/models"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	Telegram TelegramConfig `yaml:"telegram"`
	Postgres PostgresConfig `yaml:"postgres"`
	Bot      BotConfig      `yaml:"bot"`
}

type TelegramConfig struct {
	BotToken string  `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	AdminIDs []int64 `yaml:"admin_ids" env:"TELEGRAM_ADMIN_IDS" env-separator:","`
}

type PostgresConfig struct {
	Host           string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port           string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	DatabaseName   string `yaml:"database_name" env:"POSTGRES_DB" env-default:"bollwerk"`
	Username       string `yaml:"username" env:"POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	MaxConnections int    `yaml:"max_connections" env-default:"10"`
	AutoMigrate    bool   `yaml:"auto_migrate" env-default:"true"`
}

type BotConfig struct {
	// DefaultLanguage язык по умолчанию, если пользователь пропустил выбор
	DefaultLanguage string `yaml:"default_language" env-default:"de"`
	// WeekStart день недели, с которого считается недельный отчет
	WeekStart string `yaml:"week_start" env-default:"Monday"`
	// HistoryLimit количество записей в /history
	HistoryLimit int `yaml:"history_limit" env-default:"20"`
	// Tasks фиксированный набор категорий работ для клавиатуры,
	// свободный ввод задачи тоже допускается
	Tasks []string `yaml:"tasks" env-default:"Garten,Reinigung,Hausmeister,Winterdienst"`
}

// DefaultLang возвращает сконфигурированный язык по умолчанию
func (c BotConfig) DefaultLang() models.Language {
	if lang, ok := models.ParseLanguage(c.DefaultLanguage); ok {
		return lang
	}

	return models.LanguageDE
}

// MustLoad загружает конфигурацию из файла и переменных окружения
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		return mustLoadEnv()
	}

	return MustLoadPath(configPath)
}

// MustLoadPath загружает конфигурацию из указанного файла
func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func mustLoadEnv() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath получает путь к конфигурационному файлу из флага или переменной окружения.
// Приоритет: flag > env > default.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
