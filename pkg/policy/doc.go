// Package policy loads retention policies for the sweeper agent.
//
// # File Format
//
// A policy file is plain, line-oriented text. Only lines containing '=' are
// directives; everything else is ignored:
//
//	scan_period_sec = 60
//	path = /var/tmp/*.tmp, 7
//	path = C:\logs\*.log, 30
//	path = cache/*
//
// A left-hand side containing "scan_period_sec" sets the scan interval in
// seconds. Otherwise a left-hand side containing "path" adds an entry whose
// right-hand side is split on its last comma into a pattern and a retention
// period in days. Entries without a period, or with one that does not parse,
// get DefaultRetentionDays.
//
// Files ending in .yaml or .yml are read as YAML instead:
//
//	scan_period_sec: 60
//	paths:
//	  - path: /var/tmp/*.tmp
//	    days: 7
//
// # Loading
//
//	p, err := policy.Load("config.ini", policy.WithVerbose(os.Stdout))
//	if len(p.Entries) == 0 {
//	    // unreadable or empty policy, err says why when the file failed to open
//	}
//
// Load never returns a nil policy. A policy without entries is a failure for
// the caller; use Policy.Validate to turn it into ErrNoEntries.
package policy
