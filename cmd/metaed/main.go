package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"metaed/internal/config"
	"metaed/internal/editor"
	"metaed/internal/form"
	"metaed/internal/metadata"
)

func main() {
	var (
		namespace  = flag.String("namespace", "runtimes", "metadata namespace")
		schemaName = flag.String("schema", "", "schema of the record to edit")
		recordName = flag.String("name", "", "existing record to edit; empty creates a new record")
		list       = flag.Bool("list", false, "list the records of the namespace and exit")
		remove     = flag.String("delete", "", "delete the named record and exit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := metadata.NewClient(cfg.ServerURL)
	ctx := context.Background()

	switch {
	case *list:
		if err := listRecords(ctx, client, *namespace); err != nil {
			log.Fatalf("Failed to list records: %v", err)
		}
	case *remove != "":
		if err := client.Delete(ctx, *namespace, *remove); err != nil {
			log.Fatalf("Failed to delete record: %v", err)
		}
		fmt.Printf("Removed metadata %q from namespace %q\n", *remove, *namespace)
	default:
		if *schemaName == "" {
			log.Fatal("-schema is required to open the editor")
		}
		if err := runEditor(ctx, client, *namespace, *schemaName, *recordName); err != nil {
			log.Fatalf("Editor failed: %v", err)
		}
	}
}

// listRecords prints a summary of every record in the namespace, padded to
// the longest name.
func listRecords(ctx context.Context, client *metadata.Client, namespace string) error {
	records, err := client.GetAll(ctx, namespace)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No metadata available in namespace %q\n", namespace)
		return nil
	}

	nameLen := 0
	for _, rec := range records {
		if len(rec.Name) > nameLen {
			nameLen = len(rec.Name)
		}
	}
	fmt.Printf("Available metadata in namespace %q:\n", namespace)
	for _, rec := range records {
		fmt.Printf("  %-*s    %s\n", nameLen, rec.Name, rec.DisplayName)
	}
	return nil
}

func runEditor(ctx context.Context, client *metadata.Client, namespace, schemaName, recordName string) error {
	// The form owns the terminal; route default logging away from it.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	session := editor.NewSession(client, namespace, schemaName, recordName)
	model := form.New(ctx, session)

	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(*form.Model); ok && m.Saved() {
		fmt.Fprintf(os.Stdout, "Saved %q to namespace %q\n", session.Record().Name, namespace)
	}
	return nil
}
