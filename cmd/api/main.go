package main

import (
	"aistrategy/cmd"
	"aistrategy/internal/logger"
	"os"
)

func main() {
	log := logger.New()
	defer log.Sync()

	log.Infow("starting api", "commitHash", os.Getenv("commit_hash"))
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	err = deps.ApiHandler().StartApi(deps.Config.Port)
	if err != nil {
		log.Fatal(err)
	}
}
