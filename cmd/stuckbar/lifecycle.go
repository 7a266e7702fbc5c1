package main

import (
	"github.com/benaskins/stuckbar/internal/explorer"
	"github.com/spf13/cobra"
)

func newKillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "kill",
		Short:       "Terminate explorer.exe",
		Args:        cobra.NoArgs,
		Annotations: platformOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOp(cmd, (*explorer.Manager).Kill)
		},
	}
}

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "start",
		Short:       "Start explorer.exe",
		Args:        cobra.NoArgs,
		Annotations: platformOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOp(cmd, (*explorer.Manager).Start)
		},
	}
}

func newRestartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "restart",
		Short:       "Kill and relaunch explorer.exe (the default)",
		Args:        cobra.NoArgs,
		Annotations: platformOnly(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOp(cmd, (*explorer.Manager).Restart)
		},
	}
}
