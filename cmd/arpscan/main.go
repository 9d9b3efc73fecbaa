// Arpscan is a fast ARP network scanner.
//
// It discovers live hosts on the local IPv4 subnet by broadcasting
// link-layer ARP requests and collecting replies within a bounded time
// window, optionally joining the results with a MAC label inventory and
// synchronizing discovered hostnames into the system hosts file.
//
// Usage:
//
//	arpscan [flags]
//
// Scanning raw link-layer traffic requires administrator/root privileges.
// See 'arpscan --help' for available flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arpscan/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arpscan",
	Short: "Fast ARP network scanner",
	Long:  `Scans the local network using ARP requests to discover active hosts.

Each discovered host is reported as a tab-separated line of IP and MAC
address, optionally joined with labels and hostnames from a labels.txt
inventory. With --add-hosts, hostnames from the inventory are synchronized
into the system hosts file without disturbing unrelated entries.

Requires administrator/root privileges for raw link-layer access.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runScan,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arpscan %s\n", version.Full())
	},
}
