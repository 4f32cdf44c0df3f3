package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-ticketkit/components/tickets"
	"github.com/goliatone/go-ticketkit/pkg/api"
	pkgopenapi "github.com/goliatone/go-ticketkit/pkg/openapi"
	"github.com/goliatone/go-ticketkit/pkg/render"
	"github.com/goliatone/go-ticketkit/pkg/renderers/tui"
	"github.com/goliatone/go-ticketkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-ticketkit/pkg/status"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "form":
		err = runForm(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags]

Commands:
  form    render a ticket form (read or edit mode)
  list    fetch tickets from the backend and render the list
  watch   follow live processing status for one ticket
`, os.Args[0])
}

func newRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}

	tuiRenderer, err := tui.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

func runForm(args []string) error {
	fs := flag.NewFlagSet("form", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "OpenAPI document path (built-in ticket schema if empty)")
	operation := fs.String("operation", "createTicket", "operation ID to derive the form from")
	overlayPath := fs.String("overlay", "", "copy overlay YAML path")
	mode := fs.String("mode", "edit", "render mode: read or edit")
	rendererName := fs.String("renderer", "vanilla", "renderer to use")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	component, err := newComponent(*overlayPath)
	if err != nil {
		return err
	}

	schema := component.Schema()
	if *schemaPath != "" {
		doc, err := pkgopenapi.LoadFile(context.Background(), *schemaPath)
		if err != nil {
			return err
		}
		schema, err = doc.FormSchema(*operation)
		if err != nil {
			return err
		}
	}

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	renderer, err := registry.Get(*rendererName)
	if err != nil {
		return err
	}

	out, err := renderer.RenderForm(context.Background(), schema, render.Options{
		Mode: render.Mode(*mode),
	})
	if err != nil {
		return err
	}
	return emit(*output, out)
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	baseURL := fs.String("base-url", "http://localhost:3001", "backend base URL")
	token := fs.String("token", os.Getenv("TICKETKIT_TOKEN"), "session token")
	overlayPath := fs.String("overlay", "", "copy overlay YAML path")
	rendererName := fs.String("renderer", "tui", "renderer to use")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := api.New(*baseURL, api.WithSession(api.Session{Token: *token}))
	if err != nil {
		return err
	}

	component, err := newComponent(*overlayPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := client.ListTickets(ctx)
	if err != nil {
		return err
	}

	registry, err := newRegistry()
	if err != nil {
		return err
	}
	renderer, err := registry.Get(*rendererName)
	if err != nil {
		return err
	}

	out, err := renderer.RenderList(ctx, component.List().View(items), render.Options{})
	if err != nil {
		return err
	}
	return emit(*output, out)
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	baseURL := fs.String("base-url", "http://localhost:3001", "backend base URL")
	token := fs.String("token", os.Getenv("TICKETKIT_TOKEN"), "session token")
	ticketID := fs.String("ticket", "", "ticket id to watch")
	verbose := fs.Bool("verbose", false, "log connection events")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ticketID == "" {
		return fmt.Errorf("watch: -ticket is required")
	}

	options := []status.ClientOption{}
	if *token != "" {
		header := http.Header{}
		header.Set("Authorization", "Bearer "+*token)
		options = append(options, status.WithHeader(header))
	}
	if *verbose {
		options = append(options, status.WithLogf(log.Printf))
	}

	client, err := status.NewClient(*baseURL, options...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	sub, err := client.Subscribe(ctx, *ticketID,
		status.WithOnEvent(func(snapshot status.Snapshot) {
			if snapshot.Progress >= 0 {
				log.Printf("[%s] %s (%d%%)", snapshot.Status, snapshot.Message, snapshot.Progress)
			} else {
				log.Printf("[%s] %s", snapshot.Status, snapshot.Message)
			}
		}),
		status.WithOnComplete(func(snapshot status.Snapshot) {
			log.Printf("processing completed for %s", *ticketID)
			close(done)
		}),
		status.WithOnError(func(errMsg string) {
			log.Printf("processing failed for %s: %s", *ticketID, errMsg)
			close(done)
		}),
	)
	if err != nil {
		return err
	}
	defer sub.Close()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-ticker.C:
			// CANCELLED is terminal without a completion callback
			if sub.Snapshot().Terminal() {
				return nil
			}
		}
	}
}

func newComponent(overlayPath string) (*tickets.Component, error) {
	if overlayPath == "" {
		return tickets.New(), nil
	}
	overlay, err := tickets.LoadOverlay(overlayPath)
	if err != nil {
		return nil, err
	}
	return tickets.New(tickets.WithOverlay(overlay)), nil
}

func emit(path string, payload []byte) error {
	if path == "" {
		fmt.Println(string(payload))
		return nil
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("written to %s\n", path)
	return nil
}
