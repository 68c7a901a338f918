package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/korylprince/chat-transport/api"
	"github.com/korylprince/chat-transport/chatbot"
	"github.com/korylprince/chat-transport/generator"
)

const commandHelp = "Commands: /new /deeper /code /tldr /compare /quit"

func main() {
	remote := flag.String("remote", "", "Live chat service URL (empty uses the local generator only)")
	server := flag.String("server", "", "chat-transport server URL (http/https); replies come over its websocket instead of a local transport")
	lite := flag.Bool("lite", false, "Use lite mode")
	noStream := flag.Bool("nostream", false, "Wait for whole replies instead of streaming them")
	flag.Parse()

	var b backend
	if *server != "" {
		sb, err := dialServer(*server)
		if err != nil {
			fmt.Printf("WebSocket connection failed: %v\n", err)
			os.Exit(1)
		}
		defer sb.Close()
		b = sb
	} else {
		b = newLocalBackend(*remote)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	lines := readLines(os.Stdin)

	fmt.Println(commandHelp)
	fmt.Println("Ctrl-C stops a reply; at the prompt it exits.")

	var history []api.Message
	for {
		fmt.Print("\nYou: ")
		var input string
		select {
		case <-sig:
			fmt.Println("\nGoodbye!")
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println("\nGoodbye!")
				return
			}
			input = strings.TrimSpace(line)
		}
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "/quit", "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "/new":
			history = nil
			fmt.Println("Started a new conversation.")
			continue
		}

		if strings.HasPrefix(input, "/") {
			action, ok := generator.ParseAction(input[1:])
			if !ok {
				fmt.Printf("Unknown command %s. %s\n", input, commandHelp)
				continue
			}
			last := lastAssistant(history)
			if last == "" {
				fmt.Println("Nothing to follow up on yet.")
				continue
			}
			input = generator.ActionPrompt(action, last)
		}

		history = append(history, api.Message{Role: api.RoleUser, Content: input})
		history = converse(b, history, !*lite, !*noStream, sig)
	}
}

func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

func lastAssistant(history []api.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == api.RoleAssistant {
			return history[i].Content
		}
	}
	return ""
}

func statusLine(meta api.Meta) string {
	if meta.FallbackReason == "" {
		return fmt.Sprintf("[%s]", meta.Source)
	}
	return fmt.Sprintf("[%s: %s]", meta.Source, meta.FallbackReason)
}

// converse gets one reply for history and returns history with the reply appended.
// An interrupt stops the reply; text already shown is kept and marked stopped.
func converse(b backend, history []api.Message, qualityMode, stream bool, sig <-chan os.Signal) []api.Message {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()

	var partial strings.Builder
	var onChunk func(string)
	if stream {
		onChunk = func(text string) {
			partial.WriteString(text)
			fmt.Print(text)
		}
	}

	fmt.Print("Assistant: ")
	res, err := b.reply(ctx, history, qualityMode, onChunk)
	switch {
	case errors.Is(err, chatbot.ErrCancelled):
		fmt.Println("\n[stopped]")
		if partial.Len() > 0 {
			history = append(history, api.Message{Role: api.RoleAssistant, Content: partial.String() + "\n\n(stopped)"})
		}
		return history
	case err != nil:
		fmt.Printf("\nError: %v\n", err)
		return history
	}

	if !stream {
		fmt.Print(res.Reply)
	}
	fmt.Println()
	fmt.Println(statusLine(res.Meta))
	return append(history, api.Message{Role: api.RoleAssistant, Content: res.Reply})
}

// backend produces replies, either in process or through a server
type backend interface {
	reply(ctx context.Context, messages []api.Message, qualityMode bool, onChunk func(string)) (*api.Result, error)
}

type localBackend struct {
	transport *chatbot.Transport
}

func newLocalBackend(remote string) *localBackend {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	var r chatbot.Remote
	if remote != "" {
		r = chatbot.NewClient(remote)
	}
	return &localBackend{transport: chatbot.NewTransport(r, generator.New(generator.DefaultCatalog()), logger)}
}

func (l *localBackend) reply(ctx context.Context, messages []api.Message, qualityMode bool, onChunk func(string)) (*api.Result, error) {
	return l.transport.Chat(ctx, messages, chatbot.Options{QualityMode: qualityMode, OnChunk: onChunk})
}
