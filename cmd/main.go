package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spotclip/spotclip/api/route"
	"github.com/spotclip/spotclip/bootstrap"
)

func main() {
	app := bootstrap.App()
	defer app.CloseDBConnection()

	env := app.Env
	timeout := time.Duration(env.ContextTimeout) * time.Second

	if env.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()

	route.Setup(env, app.Logger, timeout, app.Store, engine)

	app.Logger.Info("spotclip api listening", "address", env.ServerAddress)
	if err := engine.Run(env.ServerAddress); err != nil {
		app.Logger.Error("server stopped", "error", err)
	}
}
