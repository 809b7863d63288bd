package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	Machine  *MachineCfg
	Console  *ConsoleCfg
	Log      *LogCfg
	Shutdown *ShutdownCfg
}

type MachineCfg struct {
	Name     string // Название автомата в приветствии
	Currency string // Единственная валюта автомата
	QuitCode string // Ввод на шаге выбора категории, завершающий работу
}

type ConsoleCfg struct {
	Width int // Ширина разделителей меню
}

type LogCfg struct {
	Level slog.Level
}

type ShutdownCfg struct {
	Timeout time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Перед чтением переменных окружения подгружает .env, если он есть.
func Load(log logger.Logger) (*Config, error) {
	if err := loadDotEnv(log); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	machine, err := loadMachineCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	console, err := loadConsoleCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	logCfg, err := loadLogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	shutdown, err := loadShutdownCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Machine:  machine,
		Console:  console,
		Log:      logCfg,
		Shutdown: shutdown,
	}, nil
}

// loadDotEnv не перезаписывает уже заданные переменные окружения.
func loadDotEnv(log logger.Logger) error {
	const defaultEnvFile = ".env"

	path := getEnvOrDefault("ENV_FILE", defaultEnvFile)

	err := godotenv.Load(path)
	switch {
	case err == nil:
		log.Debugf("loaded environment from %s", path)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("no env file at %s, using process environment", path)
		return nil
	default:
		log.Errorf(err, "invalid env file %s", path)
		return err
	}
}

func loadMachineCfg(log logger.Logger) (*MachineCfg, error) {
	const (
		defaultName     = "Amber's Vending Delight"
		defaultCurrency = "AED"
		defaultQuitCode = "Q"
	)

	currency := strings.TrimSpace(getEnvOrDefault("VENDING_CURRENCY", defaultCurrency))
	if currency == "" {
		err := fmt.Errorf("VENDING_CURRENCY must not be blank")
		log.Errorf(err, "invalid VENDING_CURRENCY")
		return nil, err
	}

	quitCode := strings.TrimSpace(getEnvOrDefault("VENDING_QUIT_CODE", defaultQuitCode))
	if quitCode == "" {
		err := fmt.Errorf("VENDING_QUIT_CODE must not be blank")
		log.Errorf(err, "invalid VENDING_QUIT_CODE")
		return nil, err
	}

	return &MachineCfg{
		Name:     getEnvOrDefault("VENDING_NAME", defaultName),
		Currency: currency,
		QuitCode: quitCode,
	}, nil
}

func loadConsoleCfg(log logger.Logger) (*ConsoleCfg, error) {
	const defaultWidth = 40

	width, err := parseIntEnv("CONSOLE_WIDTH", defaultWidth)
	if err != nil {
		log.Errorf(err, "invalid CONSOLE_WIDTH")
		return nil, e.Wrap("CONSOLE_WIDTH", err)
	}

	if width <= 0 {
		log.Errorf(e.ErrIncorrectEnvVariable, "CONSOLE_WIDTH must be positive")
		return nil, e.Wrap("CONSOLE_WIDTH", e.ErrIncorrectEnvVariable)
	}

	return &ConsoleCfg{Width: width}, nil
}

func loadLogCfg(log logger.Logger) (*LogCfg, error) {
	const defaultLevel = "warn"

	level, err := logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", defaultLevel))
	if err != nil {
		log.Errorf(err, "invalid LOG_LEVEL")
		return nil, e.Wrap("LOG_LEVEL", e.ErrIncorrectEnvVariable)
	}

	return &LogCfg{Level: level}, nil
}

func loadShutdownCfg(log logger.Logger) (*ShutdownCfg, error) {
	const defaultTimeout = 2 * time.Second

	timeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid SHUTDOWN_TIMEOUT")
		return nil, e.Wrap("SHUTDOWN_TIMEOUT", e.ErrIncorrectEnvVariable)
	}

	return &ShutdownCfg{Timeout: timeout}, nil
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
