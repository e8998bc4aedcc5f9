// contentpipeline drafts, reviews, and publishes one technical post cycle.
//
// Subcommands:
//
//	draft    generate a draft pair and file the review ticket
//	approve  label an open draft for publishing
//	discard  close a draft ticket without publishing
//	publish  push an approved ticket to the blog and the network
//	watch    poll until a new open draft appears
//	history  print (or wipe) the published-topic archive
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"ContentPipeline/internal/app"
	"ContentPipeline/internal/config"
	"ContentPipeline/internal/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("a subcommand is required")
	}

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)
	ctx := context.Background()

	switch args[0] {
	case "draft":
		flags := pflag.NewFlagSet("draft", pflag.ContinueOnError)
		topic := flags.String("topic", config.TopicOverride(), "use this topic instead of asking the model for one")
		wait := flags.Bool("wait", false, "after drafting, confirm the ticket shows up in the open-draft list")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}

		ticket, err := application.Draft(ctx, *topic)
		if err != nil {
			return err
		}
		fmt.Println(ticket.URL)

		if *wait {
			if _, err := application.Confirm(ctx, ticket.Number); err != nil {
				logger.Warn("draft created but not yet visible in the open list", "error", err)
			}
		}
		return nil

	case "approve":
		flags := pflag.NewFlagSet("approve", pflag.ContinueOnError)
		ticket := flags.Int("ticket", 0, "review ticket number to approve")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		if *ticket <= 0 {
			return fmt.Errorf("--ticket is required")
		}
		return application.Approve(ctx, *ticket)

	case "discard":
		flags := pflag.NewFlagSet("discard", pflag.ContinueOnError)
		ticket := flags.Int("ticket", 0, "review ticket number to discard")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		if *ticket <= 0 {
			return fmt.Errorf("--ticket is required")
		}
		return application.Discard(ctx, *ticket)

	case "publish":
		flags := pflag.NewFlagSet("publish", pflag.ContinueOnError)
		ticket := flags.Int("ticket", 0, "review ticket number to publish")
		retry := flags.Bool("retry", false, "re-run a ticket whose previous publish attempt failed")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		if *ticket <= 0 {
			return fmt.Errorf("--ticket is required")
		}
		return application.Publish(ctx, *ticket, *retry)

	case "watch":
		ticket, err := application.Watch(ctx)
		if err != nil {
			return err
		}
		fmt.Println(ticket.URL)
		return nil

	case "history":
		flags := pflag.NewFlagSet("history", pflag.ContinueOnError)
		wipe := flags.Bool("wipe", false, "delete the whole archive document")
		if err := flags.Parse(args[1:]); err != nil {
			return err
		}
		if *wipe {
			return application.WipeHistory()
		}

		records, err := application.History()
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Printf("%s  %s\n", r.Date, r.Topic)
		}
		return nil

	case "help", "--help", "-h":
		usage()
		return nil

	default:
		usage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: contentpipeline <draft|approve|discard|publish|watch|history> [flags]")
}
