package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"arpscan/internal/config"
	"arpscan/internal/hosts"
	"arpscan/internal/iprange"
	"arpscan/internal/labels"
	"arpscan/internal/logging"
	"arpscan/internal/mdns"
	"arpscan/internal/netif"
	"arpscan/internal/report"
	"arpscan/internal/scan"
)

// Scan flags
var (
	verbose    bool
	fastMode   bool
	rangeCIDR  string
	lookup     bool
	addHosts   bool
	dummyMode  bool
	enrichMDNS bool
)

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress information")
	rootCmd.Flags().BoolVarP(&fastMode, "fast", "f", false, "Use shorter timeouts for quick-responding networks")
	rootCmd.Flags().StringVarP(&rangeCIDR, "range", "r", "", "Scan custom IP range (e.g. 192.168.0.0/24)")
	rootCmd.Flags().BoolVarP(&lookup, "lookup", "l", false, "Look up labels from the labels.txt file")
	rootCmd.Flags().BoolVar(&addHosts, "add-hosts", false, "Update the hosts file with discovered hostnames (requires --lookup)")
	rootCmd.Flags().BoolVar(&dummyMode, "dummy", false, "Preview hosts file updates without making changes")
	rootCmd.Flags().BoolVar(&enrichMDNS, "mdns", false, "Fill missing hostnames from mDNS advertisements (display only)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if addHosts && !lookup {
		return fmt.Errorf("--add-hosts requires --lookup")
	}

	logLevel := ""
	if verbose {
		logLevel = "debug"
	}
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	prefs, err := config.Load()
	if err != nil {
		return err
	}

	iface, err := pickInterface(prefs)
	if err != nil {
		return err
	}
	logging.Info("Using interface", zap.String("interface", iface.String()))

	targets, err := pickRange(iface)
	if err != nil {
		return err
	}
	logging.Info("Scanning range",
		zap.String("range", targets.String()),
		zap.Int("hosts", targets.Size()),
		zap.Bool("fast", fastMode),
	)

	window, pause := prefs.Timings(fastMode)

	capture, err := scan.OpenCapture(iface.Name, pause)
	if err != nil {
		return err
	}
	defer capture.Close()

	scanner := scan.New(iface.IP, iface.MAC)
	discoveries, err := scanner.Scan(context.Background(), targets.Hosts(), capture, scan.Options{
		Window:     window,
		BatchSize:  prefs.Scan.BatchSize,
		BatchPause: pause,
	})
	if err != nil {
		return err
	}

	var store *labels.Store
	if lookup {
		store, err = labels.Load(prefs.Paths.Labels)
		if err != nil {
			return err
		}
		// Seed placeholder lines so new hosts are easy to label next time.
		macs := make([]net.HardwareAddr, 0, len(discoveries))
		for _, d := range discoveries {
			macs = append(macs, d.MAC)
		}
		if err := store.Ensure(macs); err != nil {
			logging.Warn("Failed to update label file", zap.Error(err))
		}
	}

	rows := report.Build(discoveries, store, lookup)

	if enrichMDNS {
		names, err := mdns.Resolve(context.Background(), prefs.Scan.MDNSTimeout)
		if err != nil {
			logging.Warn("mDNS enrichment failed", zap.Error(err))
		} else {
			report.EnrichHostnames(rows, names)
		}
	}

	if err := report.Render(os.Stdout, rows); err != nil {
		return err
	}

	if addHosts {
		return reconcileHosts(prefs, rows)
	}
	return nil
}

func pickInterface(prefs *config.Preferences) (netif.Info, error) {
	if prefs.Interface != "" {
		return netif.ByName(prefs.Interface)
	}
	return netif.Active()
}

func pickRange(iface netif.Info) (*iprange.Range, error) {
	if rangeCIDR != "" {
		return iprange.Parse(rangeCIDR)
	}
	return iprange.FromIPNet(net.IP(iface.IP.AsSlice()), iface.Netmask)
}

// reconcileHosts runs after the report has printed, so a hosts file failure
// costs only the --add-hosts step, never the scan results.
func reconcileHosts(prefs *config.Preferences, rows []report.Row) error {
	reconciler := hosts.New(prefs.Paths.Hosts)
	diff, err := reconciler.Apply(report.HostEntries(rows), dummyMode)
	if err != nil {
		return err
	}

	if dummyMode {
		fmt.Println()
		fmt.Print(diff.Summary())
		return nil
	}
	logging.Info("Hosts file updated",
		zap.String("path", reconciler.Path),
		zap.Int("added", len(diff.Added)),
		zap.Int("removed", len(diff.Removed)),
	)
	return nil
}
