package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blobsas/blobsas/client"
)

var putContentType string

var putCmd = &cobra.Command{
	Use:   "put <local-path> <container> [blob]",
	Short: "Upload a file as a block blob",
	Long: `Upload a local file as a block blob, creating or overwriting it.

The blob name defaults to the file's base name. The file's size on disk is
signed into the request; a file that changes between signing and dispatch
will be rejected by the service.

Examples:
  blobsas put ./report.pdf mycontainer
  blobsas put ./report.pdf mycontainer reports/2026/august.pdf
  blobsas put --content-type application/json ./data mycontainer config.json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runPut,
}

func init() {
	putCmd.Flags().StringVarP(&putContentType, "content-type", "t", "", "override content-type")
}

func runPut(cmd *cobra.Command, args []string) error {
	localPath, container := args[0], args[1]

	blob := ""
	if len(args) > 2 {
		blob = args[2]
	}

	ttl, err := getTTL(cmd)
	if err != nil {
		return err
	}

	c, err := getClient(cmd)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	opts := client.UploadOptions{
		LocalPath:   localPath,
		Container:   container,
		Blob:        blob,
		ContentType: putContentType,
		TTL:         ttl,
	}

	result, err := c.Upload(cmd.Context(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatUpload(os.Stdout, result)
}
