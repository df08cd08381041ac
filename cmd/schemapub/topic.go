package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/admin"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type topicCreateOptions struct {
	partitions        int
	replicationFactor int
	config            map[string]string
	ifNotExists       bool
}

func newTopicCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Create and delete topics",
	}
	cmd.AddCommand(newTopicCreateCmd(global), newTopicDeleteCmd(global))
	return cmd
}

func newTopicCreateCmd(global *globalOptions) *cobra.Command {
	opts := &topicCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create NAME...",
		Short: "Create one or more topics",
		Example: `  schemapub topic create test --partitions 1 --replication-factor 1
  schemapub topic create orders payments --config retention.ms=86400000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := lo.Map(lo.Uniq(args), func(name string, _ int) admin.TopicSpec {
				return admin.TopicSpec{
					Name:              name,
					Partitions:        opts.partitions,
					ReplicationFactor: opts.replicationFactor,
					Config:            opts.config,
					IgnoreExisting:    opts.ifNotExists,
				}
			})
			return withAdmin(cmd.Context(), global, func(ctx context.Context, a *admin.Admin) error {
				return forEachTopic(ctx, specs, cmd.OutOrStdout(), "created", func(ctx context.Context, spec admin.TopicSpec) error {
					return a.CreateTopic(ctx, spec)
				})
			})
		},
	}

	cmd.Flags().IntVarP(&opts.partitions, "partitions", "p", 0, "Partitions (0 uses the configured default)")
	cmd.Flags().IntVarP(&opts.replicationFactor, "replication-factor", "r", 0, "Replication factor (0 uses the configured default)")
	cmd.Flags().StringToStringVar(&opts.config, "config", nil, "Topic config as key=value, repeatable")
	cmd.Flags().BoolVar(&opts.ifNotExists, "if-not-exists", false, "Do not fail when the topic already exists")

	return cmd
}

func newTopicDeleteCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME...",
		Short: "Delete one or more topics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := lo.Map(lo.Uniq(args), func(name string, _ int) admin.TopicSpec {
				return admin.TopicSpec{Name: name}
			})
			return withAdmin(cmd.Context(), global, func(ctx context.Context, a *admin.Admin) error {
				return forEachTopic(ctx, specs, cmd.OutOrStdout(), "deleted", func(ctx context.Context, spec admin.TopicSpec) error {
					return a.DeleteTopic(ctx, spec.Name)
				})
			})
		},
	}
}

func withAdmin(ctx context.Context, global *globalOptions, fn func(ctx context.Context, a *admin.Admin) error) error {
	var a *admin.Admin
	return global.run(ctx, global.messagingModule, []any{&a}, func(ctx context.Context) error {
		return fn(ctx, a)
	})
}

// forEachTopic runs op for every spec concurrently and reports each success.
func forEachTopic(ctx context.Context, specs []admin.TopicSpec, out io.Writer, verb string, op func(context.Context, admin.TopicSpec) error) error {
	g, gctx := errgroup.WithContext(ctx)
	done := make([]bool, len(specs))
	for i, spec := range specs {
		g.Go(func() error {
			if err := op(gctx, spec); err != nil {
				return fmt.Errorf("topic %s: %w", spec.Name, err)
			}
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	for i, spec := range specs {
		if done[i] {
			fmt.Fprintf(out, "%s %s\n", verb, spec.Name)
		}
	}
	return err
}
