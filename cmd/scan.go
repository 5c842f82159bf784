package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filekit/dupfind/pkg/action"
	"github.com/filekit/dupfind/pkg/config"
	"github.com/filekit/dupfind/pkg/digest"
	"github.com/filekit/dupfind/pkg/finder"
	"github.com/filekit/dupfind/pkg/logger"
	"github.com/filekit/dupfind/pkg/notification"
	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

var scanOptions config.Options

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [file|directory ...]",
	Short: "Find duplicate files and list, link or delete them",
	Long: `Groups candidate files by content digest, confirms each group byte-for-byte,
and applies the selected action: list (default), consolidate via hard links,
or interactively delete.`,

	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		// init core
		if !initialized {
			initCore(true)
			initialized = true
		}

		// set log
		log := logger.GetLogger("scan")

		opts := scanOptions
		if err := opts.Validate(len(args)); err != nil {
			log.WithError(err).Fatal("Failed validating scan options")
		}

		reg, err := registry.New(opts, config.Config.Scan)
		if err != nil {
			log.WithError(err).Fatal("Failed initializing file registry")
		}

		// phase one - build the file list
		log.Debug("Building file list")
		for _, name := range args {
			reg.AddPath(name)
		}
		if opts.ReadStdin {
			reg.AddFrom(os.Stdin)
		}

		records := reg.Records()
		log.Infof("Registered %d candidate files", len(records))

		noti := notification.NewDiscordSender(log, config.Config.Notifications)
		var fields []notification.Field

		actionName := "list"
		switch {
		case opts.Link:
			actionName = "link"
		case opts.Delete:
			actionName = "delete"
		}

		// phases two and three - digest, resolve and act
		dispatcher := action.New(opts, os.Stdin, os.Stdout)
		f := finder.New(digest.File, resolver.New(opts.HardlinkAware), dispatcher)
		f.Observer = func(group *resolver.Group) {
			duplicates := make([]string, 0, len(group.Duplicates))
			for _, dup := range group.Duplicates {
				duplicates = append(duplicates, dup.Path)
			}
			fields = append(fields, noti.BuildField(notification.BuildOptions{
				Master:     group.Master.Path,
				MasterSize: group.Master.Size,
				Duplicates: duplicates,
				Action:     actionName,
			}))
		}

		stats := f.Run(records)

		log.WithField("reclaimable_space", humanize.IBytes(stats.ReclaimableBytes)).
			Infof("Found %d duplicate files in %d groups (%d files digested, %d distinct digests)",
				stats.Duplicates, stats.Groups, stats.FilesIndexed, stats.Buckets)

		if noti.CanSend() {
			sendErr := noti.Send(
				"Duplicate scan",
				fmt.Sprintf("Found **%d** duplicate files in **%d** groups | Reclaimable **%s**",
					stats.Duplicates, stats.Groups, humanize.IBytes(stats.ReclaimableBytes)),
				time.Since(start),
				fields,
			)
			if sendErr != nil {
				log.WithError(sendErr).Error("Failed sending notification")
			}
		} else {
			log.Debug("Notifications disabled, skipping...")
		}

		if reg.Failures() > 0 || dispatcher.Failures() > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVarP(&scanOptions.Recurse, "recurse", "r", false, "Include files residing in subdirectories")
	scanCmd.Flags().BoolVarP(&scanOptions.FollowSymlinks, "symlinks", "s", false, "Follow symlinks")
	scanCmd.Flags().BoolVarP(&scanOptions.HardlinkAware, "hardlinks", "H", false, "Treat names sharing the same disk area as independent duplicates")
	scanCmd.Flags().BoolVarP(&scanOptions.SkipEmpty, "no-empty", "n", false, "Exclude zero-length files from consideration")
	scanCmd.Flags().BoolVarP(&scanOptions.SameLine, "same-line", "1", false, "List each set of matches on a single line")
	scanCmd.Flags().BoolVarP(&scanOptions.OmitFirst, "omit-first", "f", false, "Omit the first file in each set of matches")
	scanCmd.Flags().BoolVarP(&scanOptions.ShowSize, "size", "S", false, "Show size of duplicate files")
	scanCmd.Flags().BoolVarP(&scanOptions.Delete, "delete", "d", false, "For each set of duplicates, prompt for files to preserve and delete all others")
	scanCmd.Flags().BoolVarP(&scanOptions.Link, "link", "l", false, "For each set of duplicates, make all the filenames hard links to the same disk storage")
	scanCmd.Flags().BoolVarP(&scanOptions.ReadStdin, "stdin", "i", false, "Read file names from stdin as well as the command line")
	scanCmd.Flags().BoolVarP(&scanOptions.Quiet, "quiet", "q", false, "Suppress duplicate-filename warnings")
}
