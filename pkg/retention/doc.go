// Package retention deletes files that have outlived their retention
// period.
//
// A Scheduler drives the agent through its states:
//
//	LOADING   read the policy file (verbose echo on the first load only)
//	SCANNING  one Sweep over every policy entry
//	WAITING   ScanIntervalSeconds*20 ticks of 50ms, polling for cancel
//	STOPPED   terminal
//
// A Sweep expands each entry's pattern, asks the Evaluator whether each
// candidate is past its retention, and hands expired candidates to the
// Purger. Failures are counted in the Report and never abort the pass.
//
// Usage:
//
//	sweeper := retention.NewSweeper(os.Stdout)
//	scheduler := retention.NewScheduler(retention.Config{
//	    PolicyPath: "config.ini",
//	    Verbose:    true,
//	}, sweeper, source)
//	if err := scheduler.Run(ctx); err != nil {
//	    // policy had no entries
//	}
package retention
