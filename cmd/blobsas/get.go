package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blobsas/blobsas/client"
)

var (
	getOutput string
	getStdout bool
	getRange  string
)

var getCmd = &cobra.Command{
	Use:   "get <container> <blob> [local-path]",
	Short: "Download a blob",
	Long: `Download a blob to a local file or stdout.

Examples:
  blobsas get mycontainer report.pdf
  blobsas get mycontainer report.pdf ./downloads/report.pdf
  blobsas get --stdout mycontainer config.json | jq .
  blobsas get --range 0-1023 mycontainer big.bin first-kb.bin`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "", "output file path")
	getCmd.Flags().BoolVar(&getStdout, "stdout", false, "write to stdout")
	getCmd.Flags().StringVar(&getRange, "range", "", `byte range, e.g. "0-499" or "500-"`)
}

func runGet(cmd *cobra.Command, args []string) error {
	container, blob := args[0], args[1]

	// Determine local path
	localPath := ""
	if len(args) > 2 {
		localPath = args[2]
	}
	if getOutput != "" {
		localPath = getOutput
	}
	if getStdout {
		localPath = "-"
	}

	ttl, err := getTTL(cmd)
	if err != nil {
		return err
	}

	get, err := buildGetOptions(getRange, "", "", "", "")
	if err != nil {
		return handleError(os.Stderr, err)
	}

	c, err := getClient(cmd)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	opts := client.DownloadOptions{
		Container: container,
		Blob:      blob,
		LocalPath: localPath,
		TTL:       ttl,
		Get:       get,
	}

	result, reader, err := c.Download(cmd.Context(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	// If stdout, write content to stdout
	if reader != nil {
		defer func() { _ = reader.Close() }()
		if _, copyErr := io.Copy(os.Stdout, reader); copyErr != nil {
			return copyErr
		}
		// Don't print metadata when writing to stdout (unless JSON mode)
		if jsonOutput {
			return getFormatter().FormatDownload(os.Stderr, result)
		}
		return nil
	}

	return getFormatter().FormatDownload(os.Stdout, result)
}
