package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NRodriguezT98/ryr-documentos/internal/testutil"
	"github.com/joho/godotenv"
)

const usage = `
Bring up the ryr-documentos development containers (MariaDB, MinIO, Authorizer)
and keep them running until interrupted.

Usage:

  testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file with the container images and credentials

example
  testcontainers -f deploy/dev.env
`

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	if showHelp {
		fmt.Print(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var containers *testutil.TestContainers
	go func() {
		var err error
		containers, err = testutil.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		log.Println("Containers up; press Ctrl-C to terminate")
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	if containers != nil {
		containers.Terminate(nil)
	}
}
