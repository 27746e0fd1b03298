package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"skillchess/internal/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
