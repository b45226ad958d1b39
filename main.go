package main

import (
	"meridianit/inbox-project/pkgs/cli"
	"meridianit/inbox-project/pkgs/conf"
	"meridianit/inbox-project/pkgs/logger"
)

func main() {
	if err := conf.Load(); err != nil {
		panic(err)
	}

	cfg := conf.GetConfig()
	logger.Init(cfg.BaseConfig.LogLevel, cfg.BaseConfig.LogFormat)

	cli.Run()
}
