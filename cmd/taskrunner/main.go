package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"taskrunner/internal/di"
	"taskrunner/internal/domain/entity"
	"taskrunner/internal/infrastructure/config"
	"taskrunner/internal/infrastructure/console"
	"taskrunner/internal/infrastructure/env"
)

func main() {
	os.Exit(run())
}

func run() int {
	envService := env.NewService()
	presenter := console.NewPresenter(os.Stdout)

	cfg, err := config.Load(envService, envService.Get("TASKRUNNER_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	task, err := readTask(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var cfgErr *entity.ConfigError
		if errors.As(err, &cfgErr) {
			return 2
		}
		return 1
	}
	defer container.Close()

	presenter.Banner(container.Provider.Name(), cfg.Model)

	result, err := container.TaskRunner.Run(context.Background(), task)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		presenter.ShowError(err)
		if entity.IsRateLimited(err) {
			return 4
		}
		return 1
	}

	presenter.ShowResult(result.Result)
	return 0
}

// readTask takes the task from argv when present, otherwise prompts for a
// single line on stdin.
func readTask(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	fmt.Println("Enter a task for the agent:")
	reader := bufio.NewReader(os.Stdin)
	task, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(task), nil
}
