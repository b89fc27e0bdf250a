package main

import (
	"log"
	"os"

	"github.com/stijnvandrunen98/huurkans/internal"
)

func main() {
	app, err := internal.NewApp()
	if err != nil {
		// ошибка конфигурации — единственный фатальный класс ошибок:
		// запуск прерывается до любой сетевой активности
		log.Printf("FATAL: failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	app.Run()
}
