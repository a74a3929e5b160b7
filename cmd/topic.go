package cmd

import (
	"context"
	"flag"

	"github.com/etnz/ledger/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display documentation topics" }
func (*topicCmd) Usage() string {
	return `ldg topic [<topic>...]

  Displays documentation topics, the readme by default. '*' displays every
  topic.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return failf("%v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
