package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv              string `mapstructure:"APP_ENV"`
	ServerAddress       string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout      int    `mapstructure:"CONTEXT_TIMEOUT"`
	StoreDriver         string `mapstructure:"STORE_DRIVER"`
	MongoURI            string `mapstructure:"MONGO_URI"`
	MongoDBName         string `mapstructure:"MONGO_DB_NAME"`
	OpenAIAPIKey        string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL       string `mapstructure:"OPENAI_BASE_URL"`
	VisionModel         string `mapstructure:"VISION_MODEL"`
	TaggingModel        string `mapstructure:"TAGGING_MODEL"`
	ModelTimeoutSeconds int    `mapstructure:"MODEL_TIMEOUT_SECONDS"`
	SeedDemoData        bool   `mapstructure:"SEED_DEMO_DATA"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
	LogFormat           string `mapstructure:"LOG_FORMAT"`
}

var envDefaults = map[string]any{
	"APP_ENV":               "development",
	"SERVER_ADDRESS":        ":3001",
	"CONTEXT_TIMEOUT":       5,
	"STORE_DRIVER":          "memory",
	"MONGO_URI":             "mongodb://localhost:27017",
	"MONGO_DB_NAME":         "spotclip",
	"OPENAI_API_KEY":        "",
	"OPENAI_BASE_URL":       "",
	"VISION_MODEL":          "gpt-4o-mini",
	"TAGGING_MODEL":         "gpt-4o-mini",
	"MODEL_TIMEOUT_SECONDS": 30,
	"SEED_DEMO_DATA":        false,
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "text",
}

func NewEnv() *Env {
	// SetDefault registers every key so AutomaticEnv-sourced values survive
	// Unmarshal even without a .env file.
	for key, value := range envDefaults {
		viper.SetDefault(key, value)
	}
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("no .env file found, reading configuration from the environment")
	}

	env := Env{}
	if err := viper.Unmarshal(&env); err != nil {
		log.Fatal("environment can't be loaded: ", err)
	}

	if env.AppEnv == "development" {
		log.Println("the app is running in development env")
	}
	return &env
}
