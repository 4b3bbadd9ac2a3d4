package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"quizzer_backend/internal/attemptclient"
)

func main() {
	baseURL := flag.String("server", "http://127.0.0.1:8080", "quizzer server base URL")
	email := flag.String("email", "", "examinee email (must be on the convocatory roster)")
	convocatoryID := flag.String("convocatory", "", "convocatory id to attempt")
	pageSize := flag.Int("page-size", 10, "questions per page")
	autosave := flag.Duration("autosave", 30*time.Second, "autosave interval")
	flag.Parse()

	if *email == "" || *convocatoryID == "" {
		fmt.Fprintln(os.Stderr, "both -email and -convocatory are required")
		flag.Usage()
		os.Exit(2)
	}

	client := attemptclient.NewClient(*baseURL, *email, nil)
	runner := attemptclient.NewRunner(client, attemptclient.RunnerConfig{
		ConvocatoryID:    *convocatoryID,
		PageSize:         *pageSize,
		AutosaveInterval: *autosave,
	})

	if err := attemptclient.RunInteractive(context.Background(), runner, os.Stdin, os.Stdout, *autosave); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
