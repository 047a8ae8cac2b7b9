// Sweeper is a file retention agent.
//
// It reads a retention policy (path patterns with a retention in days),
// deletes every matching file or directory older than its retention, waits
// for the scan interval and starts over, re-reading the policy each time.
// It runs until the operator types exit (or Ctrl+X) on the console, a stop
// file appears, or it receives SIGINT/SIGTERM.
//
// Usage:
//
//	# Run with ./config.ini
//	sweeper
//
//	# Run with a specific policy and settings file
//	sweeper /etc/sweeper/policy.ini --settings /etc/sweeper/sweeper.yaml
//
//	# Single pass, for cron or systemd timers
//	sweeper --once /etc/sweeper/policy.ini
//
//	# Parse a policy without deleting anything
//	sweeper check /etc/sweeper/policy.ini --output json
//
// Policy file:
//
//	scan_period_sec = 3600
//	path = /var/tmp/*.tmp, 7
//	path = /var/log/app/*.log, 30
package main

func main() {
	Execute()
}
