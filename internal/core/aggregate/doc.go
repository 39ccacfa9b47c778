// Package aggregate turns the vote records of one or more periods into
// standings: per-candidate tallies, the current leading day and location,
// and the long-running participation leaderboard.
//
// Everything here is a pure function of its inputs. Missing selections are
// treated as empty sets, so no input shape makes these functions fail.
package aggregate
