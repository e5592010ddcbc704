package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blobsas/blobsas/client"
)

var rmCmd = &cobra.Command{
	Use:   "rm <container> <blob> [blob...]",
	Short: "Delete blobs",
	Long: `Delete one or more blobs from a container.

Continues past individual failures and reports every result; the exit code
is non-zero if any delete failed.

Examples:
  blobsas rm mycontainer stale.tmp
  blobsas rm mycontainer old/a.txt old/b.txt old/c.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	container, blobs := args[0], args[1:]

	ttl, err := getTTL(cmd)
	if err != nil {
		return err
	}

	c, err := getClient(cmd)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	opts := client.RemoveOptions{
		Container: container,
		Blobs:     blobs,
		TTL:       ttl,
	}

	results, err := c.Remove(cmd.Context(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if err := getFormatter().FormatRemove(os.Stdout, results); err != nil {
		return err
	}

	// Return error if any deletes failed
	if client.HasRemoveErrors(results) {
		return &exitError{code: 1}
	}

	return nil
}
