// Command watch tails a user's notification feed and conversation inbox from
// the terminal, polling the service the same way the web client does. Useful
// for verifying fan-out end to end against a running server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Sanchit-Raut/KolabIT-sub001/internal/client"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/config"
	"github.com/Sanchit-Raut/KolabIT-sub001/internal/sync"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "path to config file")
		baseURL    = flag.String("url", "http://localhost:8080", "server base URL")
		token      = flag.String("token", "", "bearer token for the watched user")
		partnerID  = flag.Int64("partner", 0, "also tail the message thread with this user id")
	)
	flag.Parse()

	if *token == "" {
		log.Fatal("a bearer token is required (-token)")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	api := client.NewAPIClient(*baseURL, *token, logger)

	feed := sync.OpenNotificationFeed(api, cfg.Sync.FeedInterval, 20)
	defer feed.Close()

	inbox := sync.OpenConversationInbox(api, cfg.Sync.FeedInterval)
	defer inbox.Close()

	// A nil channel blocks forever, so the select below simply never fires
	// when no thread is open.
	var thread *sync.MessageThread
	var threadUpdates <-chan sync.ThreadUpdate
	if *partnerID > 0 {
		thread = sync.OpenMessageThread(api, *partnerID, cfg.Sync.ThreadInterval)
		defer thread.Close()
		threadUpdates = thread.Updates()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case u := <-feed.Updates():
			printFeed(u)
		case u := <-inbox.Updates():
			printInbox(u)
		case u := <-threadUpdates:
			printThread(u)
		case <-quit:
			fmt.Println("closing")
			return
		}
	}
}

func printFeed(u sync.FeedUpdate) {
	if u.Err != nil {
		fmt.Printf("[feed] error: %v\n", u.Err)
		return
	}
	fmt.Printf("[feed] %d total, %d unread\n", u.Total, u.Unread)
	for _, n := range u.Notifications {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Printf("  %s #%d %-22s %s\n", marker, n.ID, n.Type, n.Title)
	}
}

func printInbox(u sync.InboxUpdate) {
	if u.Err != nil {
		fmt.Printf("[inbox] error: %v\n", u.Err)
		return
	}
	fmt.Printf("[inbox] %d conversations\n", len(u.Conversations))
	for _, c := range u.Conversations {
		name := c.OtherUser.Name
		if name == "" {
			name = fmt.Sprintf("user %d", c.OtherUser.ID)
		}
		fmt.Printf("  %-20s (%s) %s\n", name, c.Direction, c.LastMessage.Content)
	}
}

func printThread(u sync.ThreadUpdate) {
	if u.Err != nil {
		fmt.Printf("[thread %d] error: %v\n", u.PartnerID, u.Err)
		return
	}
	fmt.Printf("[thread %d] %d messages\n", u.PartnerID, len(u.Messages))
	for _, m := range u.Messages {
		fmt.Printf("  %d -> %d: %s\n", m.SenderID, m.RecipientID, m.Content)
	}
}
