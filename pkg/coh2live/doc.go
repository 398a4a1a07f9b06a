// Package coh2live detects live CoH2 multiplayer matches from the game's
// log file and aggregates leaderboard statistics for every player.
//
// This package allows you to:
//   - Tail the CoH2 log and detect when a new multiplayer match starts
//   - Fetch and estimate leaderboard ranks for the whole roster
//   - Build tools like live overlays, notifiers and match history viewers
//
// # Basic Usage
//
// To watch for matches in real-time:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	watcher, err := coh2live.NewWatcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer watcher.Close()
//
//	reports, notices, errs := watcher.Watch(ctx)
//	for {
//	    select {
//	    case rep, ok := <-reports:
//	        if !ok {
//	            return
//	        }
//	        fmt.Printf("match: %s, %d players\n",
//	            rep.Match.Type, len(rep.AllRecords()))
//	    case notice, ok := <-notices:
//	        if !ok {
//	            return
//	        }
//	        fmt.Printf("new %s match detected\n", notice.Type)
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// Reports carry one record per player with fetched or estimated stats;
// fields that could not be obtained are explicitly unknown, never
// zero-filled, and estimated ranks are flagged for distinct rendering.
//
// # Platform Support
//
// This package is designed for Windows where CoH2 runs. The log file
// path is auto-detected from the standard documents location.
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with Relic
// Entertainment or SEGA.
package coh2live
